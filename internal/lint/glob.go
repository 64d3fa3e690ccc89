package lint

import (
	"path"
	"path/filepath"
	"strings"
)

// MatchesGlob checks if a file path matches any of the include patterns
// and does not match any of the exclude patterns. Paths are matched with
// forward slashes; a relative path is treated as rooted so that a pattern
// like "node_modules/**" also matches at the top level.
func MatchesGlob(filePath string, includePatterns []string, excludePatterns []string) bool {
	if len(includePatterns) == 0 {
		return false
	}

	filePath = filepath.ToSlash(filePath)
	if !strings.HasPrefix(filePath, "/") {
		filePath = "/" + strings.TrimPrefix(filePath, "./")
	}

	// Check exclude first
	if matchAny(filePath, excludePatterns) {
		return false
	}
	return matchAny(filePath, includePatterns)
}

func matchAny(filePath string, patterns []string) bool {
	for _, pattern := range patterns {
		for _, p := range expandBraces(filepath.ToSlash(pattern)) {
			if globMatch(filePath, p) {
				return true
			}
		}
	}
	return false
}

// expandBraces expands the first {a,b} group of pattern, recursively, so
// "*.{vue,ts}" yields "*.vue" and "*.ts". Unbalanced braces are literal.
func expandBraces(pattern string) []string {
	open := strings.IndexByte(pattern, '{')
	if open < 0 {
		return []string{pattern}
	}
	end := strings.IndexByte(pattern[open:], '}')
	if end < 0 {
		return []string{pattern}
	}
	end += open
	var out []string
	for _, alt := range strings.Split(pattern[open+1:end], ",") {
		out = append(out, expandBraces(pattern[:open]+alt+pattern[end+1:])...)
	}
	return out
}

// globMatch matches a path against a glob pattern with ** support.
// The matching is done against suffixes of the path: "src/**/*.vue" matches
// any file under a "src/" directory whose name matches "*.vue".
func globMatch(filePath, pattern string) bool {
	// Try exact match first
	if matched, _ := path.Match("/"+strings.TrimPrefix(pattern, "/"), filePath); matched {
		return true
	}

	if !strings.Contains(pattern, "**") {
		// No ** and no directory part: match just the basename
		if !strings.Contains(pattern, "/") {
			matched, _ := path.Match(pattern, path.Base(filePath))
			return matched
		}
		return false
	}

	parts := strings.SplitN(pattern, "**", 2)
	prefix := strings.Trim(parts[0], "/")
	suffix := strings.TrimPrefix(parts[1], "/")

	remaining := filePath
	if prefix != "" {
		// Find the prefix directory in the path, then match the suffix below it
		searchStr := "/" + prefix + "/"
		idx := strings.Index(filePath, searchStr)
		if idx < 0 {
			return false
		}
		remaining = filePath[idx+len(searchStr):]
	}
	if suffix == "" {
		return true
	}
	if matched, _ := path.Match(suffix, path.Base(remaining)); matched {
		return true
	}
	matched, _ := path.Match(suffix, strings.TrimPrefix(remaining, "/"))
	return matched
}
