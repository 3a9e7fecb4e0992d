package disclosure

import (
	"strings"
	"testing"

	"invention-disclosure-be/pkg/disclosure/section"

	"github.com/stretchr/testify/assert"
)

func fullTemplate() string {
	var b strings.Builder
	b.WriteString("\\documentclass{article}\n\\begin{document}\n")
	for _, id := range section.All() {
		b.WriteString(id.Placeholder())
		b.WriteString("\n")
	}
	b.WriteString("\\end{document}\n")
	return b.String()
}

func TestVerifyTemplateComplete(t *testing.T) {
	assert.NoError(t, VerifyTemplate(fullTemplate()))
}

func TestVerifyTemplateMissingPlaceholder(t *testing.T) {
	tpl := strings.Replace(fullTemplate(), section.Witnesses.Placeholder()+"\n", "", 1)
	err := VerifyTemplate(tpl)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "WITNESSES")
}

func TestVerifyTemplateUnknownPlaceholder(t *testing.T) {
	tpl := fullTemplate() + "<<BUDGET>>\n"
	err := VerifyTemplate(tpl)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "BUDGET")
}
