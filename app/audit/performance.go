package audit

import (
	"path/filepath"
	"strings"
)

// Size thresholds in bytes, matching the original audit tooling:
// CSS warns over 100KB, JS over 50KB, images over 500KB.
const (
	cssWarnSize     = 100 * 1024
	cssCriticalSize = 200 * 1024
	jsWarnSize      = 50 * 1024
	jsCriticalSize  = 100 * 1024
	imageWarnSize   = 500 * 1024
)

// RunPerformance audits asset sizes and minification under root.
func RunPerformance(root string) (*Report, error) {
	files, err := collectFiles(root)
	if err != nil {
		return nil, err
	}
	r := newReport("Performance")

	for _, f := range files {
		switch {
		case f.ext == ".css":
			auditAssetSize(r, f, cssWarnSize, cssCriticalSize)
		case f.ext == ".js":
			auditAssetSize(r, f, jsWarnSize, jsCriticalSize)
		}
	}
	auditImageSizes(r, files)

	return r, nil
}

func auditAssetSize(r *Report, f staticFile, warn, critical int64) {
	name := filepath.Base(f.path)
	sizeKB := float64(f.size) / 1024

	status := StatusGood
	if f.size > critical {
		status = StatusCritical
	} else if f.size > warn {
		status = StatusWarning
	}
	minified := strings.Contains(name, ".min") || looksMinified(f.content)
	r.add(name, status, "%.2f KB, minified=%t", sizeKB, minified)

	if status != StatusGood {
		if minified {
			r.recommend("%s is %.2f KB - consider further optimization", name, sizeKB)
		} else {
			r.recommend("%s is %.2f KB - run minification", name, sizeKB)
		}
	}
}

// looksMinified treats long average line length as a minification
// signal; hand-written assets rarely exceed ~200 chars per line.
func looksMinified(content string) bool {
	if content == "" {
		return false
	}
	lines := strings.Count(content, "\n") + 1
	return len(content)/lines > 200
}

func auditImageSizes(r *Report, files []staticFile) {
	total, large := 0, 0
	for _, f := range files {
		if !isImageExt(f.ext) {
			continue
		}
		total++
		if f.size > imageWarnSize {
			large++
			r.recommend("Image %s is %.2f KB - consider compression", filepath.Base(f.path), float64(f.size)/1024)
		}
	}
	if total == 0 {
		r.add("images", StatusGood, "no images found")
		return
	}
	status := StatusGood
	if large > 0 {
		status = StatusNeedsImprovement
	}
	r.add("images", status, "%d images, %d over %d KB", total, large, imageWarnSize/1024)
}
