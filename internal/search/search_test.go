package search

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const arcTheme = `[Icon Theme]
Name=Arc
Comment=Test theme
Directories=scalable/apps, scalable/places,linked/apps,sized,unknown

[scalable/apps]
Context=Applications
Size=48
Type=Scalable

[scalable/places]
Context=Places

[linked/apps]
Context=Applications

[sized]
Size=16

[unknown]
Context=Wallpapers
`

func touch(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func setupIcons(t *testing.T) (string, string) {
	t.Helper()
	root := t.TempDir()
	theme := filepath.Join(root, "Arc")
	touch(t, filepath.Join(theme, "index.theme"), arcTheme)
	touch(t, filepath.Join(theme, "scalable/apps/firefox.svg"), "")
	touch(t, filepath.Join(theme, "scalable/apps/firefox-symbolic.svg"), "")
	touch(t, filepath.Join(theme, "scalable/apps/steam.svg"), "")
	touch(t, filepath.Join(theme, "scalable/places/firefox-home.svg"), "")
	touch(t, filepath.Join(theme, "sized/firefox.png"), "")
	touch(t, filepath.Join(theme, "unknown/firefox.png"), "")
	require.NoError(t, os.Symlink("scalable", filepath.Join(theme, "linked")))

	hicolor := filepath.Join(t.TempDir(), "hicolor")
	touch(t, filepath.Join(hicolor, "48x48/apps/firefox.png"), "")
	touch(t, filepath.Join(hicolor, "48x48/stock/firefox.png"), "")
	return root, hicolor
}

func TestIcons(t *testing.T) {
	root, hicolor := setupIcons(t)

	results, err := Icons("firefox", Options{IconRoots: []string{root}, HicolorRoot: hicolor})
	require.NoError(t, err)

	assert.Equal(t, []string{"apps/firefox", "places/firefox-home"}, results.Keys())
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "Arc/scalable/apps/firefox.svg"),
		filepath.Join(root, "Arc/scalable/apps/firefox-symbolic.svg"),
		filepath.Join(hicolor, "48x48/apps/firefox.png"),
	}, results["apps/firefox"])
}

func TestIcons_MissingRoots(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	results, err := Icons("firefox", Options{IconRoots: []string{missing}, HicolorRoot: missing})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestDesktopFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "org.mozilla.Firefox.desktop"), `[Desktop Entry]
# launcher
Name=Firefox
Exec=firefox %u
Icon=firefox
Type=Application
Categories=Network;WebBrowser;
`)
	touch(t, filepath.Join(root, "nested/firefox-nightly.desktop"), `[Desktop Entry]
Icon=/opt/nightly/icon.png
Type=Application
`)
	touch(t, filepath.Join(root, "nested/firefox-link.desktop"), `[Desktop Entry]
Icon=firefox-link
Type=Link
`)
	touch(t, filepath.Join(root, "steam.desktop"), `[Desktop Entry]
Icon=steam
Type=Application
`)

	results, err := DesktopFiles("FireFox", []string{root, filepath.Join(root, "missing")})
	require.NoError(t, err)
	assert.Equal(t, []string{"apps/firefox"}, results.Keys())
	assert.Equal(t, []string{filepath.Join(root, "org.mozilla.Firefox.desktop")}, results["apps/firefox"])
}

func TestRender(t *testing.T) {
	results := Merge(
		Results{"places/home": {"/b/home.svg"}, "apps/steam": {"/z/steam.svg"}},
		Results{"apps/steam": {"/a/steam.svg"}},
	)

	var plain bytes.Buffer
	require.NoError(t, results.Render(&plain, false))
	assert.Equal(t, "apps/steam\nplaces/home\n", plain.String())

	var verbose bytes.Buffer
	require.NoError(t, results.Render(&verbose, true))
	assert.Equal(t, "apps/steam found in:\n\t/a/steam.svg\n\t/z/steam.svg\nplaces/home found in:\n\t/b/home.svg\n", verbose.String())
}
