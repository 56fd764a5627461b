package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, name, content string) {
	t.Helper()
	path := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func finding(t *testing.T, r *Report, name string) Finding {
	t.Helper()
	for _, f := range r.Findings {
		if f.Name == name {
			return f
		}
	}
	t.Fatalf("no finding named %q in %+v", name, r.Findings)
	return Finding{}
}

func TestRunMobileMissingViewport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html", "<html><head></head><body></body></html>")

	r, err := RunMobile(root)
	require.NoError(t, err)

	assert.Equal(t, StatusCritical, finding(t, r, "viewport").Status)
	assert.Equal(t, StatusCritical, r.OverallStatus())
	assert.Contains(t, strings.Join(r.Recommendations, "\n"), "viewport meta tag")
}

func TestRunMobileHealthyTree(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html",
		`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	writeFile(t, root, "css/style.css",
		"@media (max-width: 640px) { .nav { display: none; } }\n.btn { min-height: 48px; }")
	writeFile(t, root, "js/main.js",
		`window.addEventListener("resize", relayout);`)
	writeFile(t, root, "img/hero.webp", "fake-webp-bytes")

	r, err := RunMobile(root)
	require.NoError(t, err)

	assert.Equal(t, StatusGood, r.OverallStatus())
	assert.Empty(t, r.Recommendations)
	assert.Equal(t, StatusGood, finding(t, r, "touch targets").Status)
	assert.Equal(t, StatusGood, finding(t, r, "images").Status)
}

func TestRunMobileLowWebpShare(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.html",
		`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
	writeFile(t, root, "a.jpg", "x")
	writeFile(t, root, "b.png", "x")
	writeFile(t, root, "c.webp", "x")

	r, err := RunMobile(root)
	require.NoError(t, err)

	assert.Equal(t, StatusNeedsImprovement, finding(t, r, "images").Status)
	assert.Contains(t, strings.Join(r.Recommendations, "\n"), "WebP")
}

func TestRunPerformanceOversizedCSS(t *testing.T) {
	root := t.TempDir()
	// 150KB of short lines: over the warn threshold, clearly unminified.
	writeFile(t, root, "css/style.css", strings.Repeat(".a { color: red; }\n", 150*1024/19))

	r, err := RunPerformance(root)
	require.NoError(t, err)

	f := finding(t, r, "style.css")
	assert.Equal(t, StatusWarning, f.Status)
	assert.Contains(t, f.Detail, "minified=false")
	assert.Contains(t, strings.Join(r.Recommendations, "\n"), "run minification")
}

func TestRunPerformanceCriticalJS(t *testing.T) {
	root := t.TempDir()
	// 120KB on a single line looks minified but is still over critical.
	writeFile(t, root, "js/app.js", strings.Repeat("var a=1;", 120*1024/8))

	r, err := RunPerformance(root)
	require.NoError(t, err)

	f := finding(t, r, "app.js")
	assert.Equal(t, StatusCritical, f.Status)
	assert.Contains(t, f.Detail, "minified=true")
	assert.Equal(t, StatusCritical, r.OverallStatus())
}

func TestRunPerformanceSmallAssetsPass(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "css/style.css", ".a { color: red; }\n")
	writeFile(t, root, "js/main.js", "console.log('hi');\n")

	r, err := RunPerformance(root)
	require.NoError(t, err)
	assert.Equal(t, StatusGood, r.OverallStatus())
	assert.Empty(t, r.Recommendations)
}

func TestRunPerformanceLargeImage(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "img/hero.jpg", strings.Repeat("x", 600*1024))
	writeFile(t, root, "img/icon.png", "tiny")

	r, err := RunPerformance(root)
	require.NoError(t, err)

	assert.Equal(t, StatusNeedsImprovement, finding(t, r, "images").Status)
	assert.Contains(t, strings.Join(r.Recommendations, "\n"), "hero.jpg")
}

func TestLooksMinified(t *testing.T) {
	assert.False(t, looksMinified(""))
	assert.False(t, looksMinified("short\nlines\nhere\n"))
	assert.True(t, looksMinified(strings.Repeat("a", 5000)))
}
