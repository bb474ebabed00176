package generate

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoStyle is returned for source icons without a usable <style> element.
var ErrNoStyle = errors.New("svg has no style tag")

var (
	strokeWidthRe = regexp.MustCompile(`(stroke-width\s*:)[^;]+;`)
	strokeRe      = regexp.MustCompile(`(stroke\s*:[^;]+;)`)
)

// Transform restyles an icon for v: dot-sized circles grow with the line
// weight, the stylesheet gets the variant's stroke width and source colour
// replaced by the variant colour.
func Transform(doc *etree.Document, v Variant) error {
	root := doc.Root()
	if root == nil {
		return ErrNoStyle
	}

	radius := strconv.FormatFloat(0.75*float64(v.LineWeight), 'f', -1, 64)
	for _, circle := range root.FindElements(".//circle") {
		if r := circle.SelectAttrValue("r", ""); r == "0.75" || r == ".75" {
			circle.CreateAttr("r", radius)
		}
	}

	style := root.FindElement(".//style")
	if style == nil || style.Text() == "" {
		return ErrNoStyle
	}
	style.SetText(restyle(style.Text(), v))
	return nil
}

func restyle(css string, v Variant) string {
	width := fmt.Sprintf("%dpx;", v.LineWeight)
	if strings.Contains(css, "stroke-width") {
		css = strokeWidthRe.ReplaceAllString(css, "${1}"+width)
	} else {
		css = strokeRe.ReplaceAllString(css, "${1}stroke-width:"+width)
	}
	return strings.ReplaceAll(css, v.SrcColor, v.Color)
}

// ensureDeclaration puts an XML declaration in front of the root element.
func ensureDeclaration(doc *etree.Document) {
	for _, tok := range doc.Child {
		if pi, ok := tok.(*etree.ProcInst); ok && pi.Target == "xml" {
			return
		}
	}
	doc.InsertChildAt(0, etree.NewProcInst("xml", `version="1.0" encoding="UTF-8"`))
	doc.InsertChildAt(1, etree.NewText("\n"))
}
