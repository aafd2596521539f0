// Package htmltext turns article markup into short plain-text previews.
package htmltext

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/mikiasgoitom/articleboard/internal/domain/contract"
)

const DefaultPreviewLength = 200

type Previewer struct {
	maxRunes int
}

var _ contract.IPreviewer = (*Previewer)(nil)

func NewPreviewer(maxRunes int) *Previewer {
	if maxRunes <= 0 {
		maxRunes = DefaultPreviewLength
	}
	return &Previewer{maxRunes: maxRunes}
}

// Preview strips tags, collapses whitespace and cuts the text at maxRunes,
// appending an ellipsis when it was cut. Unparseable input is treated as plain text.
func (p *Previewer) Preview(content string) string {
	text := content
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err == nil {
		doc.Find("script, style").Remove()
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if len(runes) <= p.maxRunes {
		return text
	}
	return strings.TrimSpace(string(runes[:p.maxRunes])) + "…"
}
