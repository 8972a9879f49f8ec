package render

import (
	"bytes"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var md = goldmark.New(goldmark.WithExtensions(extension.Typographer))

// Markdown renders trusted catalog markdown to HTML. Raw HTML in the source is
// dropped by goldmark's default renderer.
func Markdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// InlineMarkdown renders markdown and strips the wrapping paragraph, for
// one-line copy inside an existing element.
func InlineMarkdown(src string) template.HTML {
	out := strings.TrimSpace(string(Markdown(src)))
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out)
}

// FuncMap returns the template functions shared by all pages.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		// String
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"join":  strings.Join,
		"slug":  Slug,

		// Markdown
		"markdown":       Markdown,
		"inlineMarkdown": InlineMarkdown,

		// Misc
		"year": func() int { return time.Now().Year() },
		"add":  func(a, b int) int { return a + b },
		"telHref": func(phone string) template.URL {
			return template.URL("tel:" + strings.Map(func(r rune) rune {
				if r == '+' || (r >= '0' && r <= '9') {
					return r
				}
				return -1
			}, phone))
		},
	}
}

// MergeFuncMaps merges multiple FuncMaps into one.
// Later maps override earlier ones for duplicate keys.
func MergeFuncMaps(maps ...template.FuncMap) template.FuncMap {
	result := make(template.FuncMap)
	for _, m := range maps {
		for k, v := range m {
			result[k] = v
		}
	}
	return result
}

// Slug lowercases s and joins its words with dashes, for element ids and
// CSS hooks: "E-Commerce" -> "e-commerce", "Web Design" -> "web-design".
func Slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
