package audit

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var breakpointPrefixes = []string{"sm:", "md:", "lg:", "xl:", "2xl:"}

var mediaQueryRe = regexp.MustCompile(`@media[^{]*\{`)

// RunMobile audits the static tree under root for mobile readiness:
// viewport configuration, responsive CSS, touch handling and image
// formats.
func RunMobile(root string) (*Report, error) {
	files, err := collectFiles(root)
	if err != nil {
		return nil, err
	}
	r := newReport("Mobile")

	auditViewport(r, files)
	auditResponsiveCSS(r, files)
	auditMobileJS(r, files)
	auditImageFormats(r, files)

	return r, nil
}

func auditViewport(r *Report, files []staticFile) {
	hasViewport, hasCorrectViewport := false, false
	for _, f := range files {
		if f.ext != ".html" {
			continue
		}
		if strings.Contains(f.content, `name="viewport"`) {
			hasViewport = true
		}
		if strings.Contains(f.content, "width=device-width, initial-scale=1.0") {
			hasCorrectViewport = true
		}
	}
	switch {
	case hasCorrectViewport:
		r.add("viewport", StatusGood, "viewport meta tag configured for device width")
	case hasViewport:
		r.add("viewport", StatusNeedsImprovement, "viewport meta tag present but not width=device-width, initial-scale=1.0")
		r.recommend("Set the viewport meta tag to width=device-width, initial-scale=1.0")
	default:
		r.add("viewport", StatusCritical, "no viewport meta tag found in any HTML file")
		r.recommend("Add proper viewport meta tag for mobile responsiveness")
	}
}

func auditResponsiveCSS(r *Report, files []staticFile) {
	breakpoints := 0
	mediaQueries := 0
	touchFriendly := false
	for _, f := range files {
		if f.ext != ".css" {
			continue
		}
		for _, prefix := range breakpointPrefixes {
			breakpoints += strings.Count(f.content, prefix)
		}
		mediaQueries += len(mediaQueryRe.FindAllString(f.content, -1))
		if strings.Contains(f.content, "min-height: 48px") || strings.Contains(f.content, "min-height: 56px") {
			touchFriendly = true
		}
	}

	if breakpoints > 0 || mediaQueries > 0 {
		r.add("responsive CSS", StatusGood, "%d breakpoint classes, %d media queries", breakpoints, mediaQueries)
	} else {
		r.add("responsive CSS", StatusNeedsImprovement, "no responsive breakpoints or media queries found")
		r.recommend("Consider adding mobile-specific CSS classes for better mobile experience")
	}

	if touchFriendly {
		r.add("touch targets", StatusGood, "touch-friendly button sizing found")
	} else {
		r.add("touch targets", StatusNeedsImprovement, "no touch-friendly button sizing found")
		r.recommend("Add touch-friendly button sizing (minimum 48px height)")
	}
}

func auditMobileJS(r *Report, files []staticFile) {
	hasTouch, hasOrientation, hasResize := false, false, false
	for _, f := range files {
		if f.ext != ".js" {
			continue
		}
		lower := strings.ToLower(f.content)
		if strings.Contains(lower, "touch") {
			hasTouch = true
		}
		if strings.Contains(f.content, "orientationchange") {
			hasOrientation = true
		}
		if strings.Contains(f.content, "resize") {
			hasResize = true
		}
	}
	if hasTouch || hasOrientation || hasResize {
		r.add("mobile JS", StatusGood, "touch=%t orientationchange=%t resize=%t", hasTouch, hasOrientation, hasResize)
	} else {
		r.add("mobile JS", StatusNeedsImprovement, "no touch, orientation or resize handling found")
		r.recommend("Consider adding mobile-specific JavaScript handling")
	}
}

func auditImageFormats(r *Report, files []staticFile) {
	total, webp := 0, 0
	for _, f := range files {
		if !isImageExt(f.ext) {
			continue
		}
		total++
		if f.ext == ".webp" {
			webp++
		}
	}
	if total == 0 {
		r.add("images", StatusGood, "no images found")
		return
	}
	pct := float64(webp) / float64(total) * 100
	if pct >= 50 {
		r.add("images", StatusGood, "%d/%d images are WebP (%.1f%%)", webp, total, pct)
	} else {
		r.add("images", StatusNeedsImprovement, "%d/%d images are WebP (%.1f%%)", webp, total, pct)
		r.recommend("Convert images to WebP for faster mobile loading")
	}
}

// staticFile is a file gathered from the audited tree. Text contents
// are loaded eagerly; binary assets only carry their size.
type staticFile struct {
	path    string
	ext     string
	size    int64
	content string
}

func isTextExt(ext string) bool {
	switch ext {
	case ".html", ".css", ".js":
		return true
	}
	return false
}

func isImageExt(ext string) bool {
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg":
		return true
	}
	return false
}

func collectFiles(root string) ([]staticFile, error) {
	var files []staticFile
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !isTextExt(ext) && !isImageExt(ext) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		f := staticFile{path: path, ext: ext, size: info.Size()}
		if isTextExt(ext) {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			f.content = string(data)
		}
		files = append(files, f)
		return nil
	})
	return files, err
}
