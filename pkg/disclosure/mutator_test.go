package disclosure

import (
	"strings"
	"testing"

	"invention-disclosure-be/pkg/disclosure/section"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const miniDoc = `\section{Title}
<<TITLE>>
\section{Purpose}
<<PURPOSE>>
\end{document}`

func TestApplyEditInsertsManagedBlock(t *testing.T) {
	got, err := ApplyEdit(miniDoc, section.Title, `A \& B`)
	require.NoError(t, err)

	want := `\section{Title}
<<TITLE>>
% start:TITLE
A \& B
% end:TITLE
\section{Purpose}
<<PURPOSE>>
\end{document}`
	assert.Equal(t, want, got)
}

func TestApplyEditOverwritesPriorBlock(t *testing.T) {
	first, err := ApplyEdit(miniDoc, section.Title, `A \& B`)
	require.NoError(t, err)

	second, err := ApplyEdit(first, section.Title, `C \% D`)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(second, "% start:TITLE"))
	assert.Equal(t, 1, strings.Count(second, "% end:TITLE"))
	assert.Contains(t, second, `C \% D`)
	assert.NotContains(t, second, `A \& B`)

	// The placeholder anchor survives every edit.
	assert.Contains(t, second, "<<TITLE>>")
}

func TestApplyEditIsIdempotent(t *testing.T) {
	first, err := ApplyEdit(miniDoc, section.Title, "content")
	require.NoError(t, err)

	second, err := ApplyEdit(first, section.Title, "content")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestApplyEditLeavesOtherSectionsAlone(t *testing.T) {
	doc, err := ApplyEdit(miniDoc, section.Title, "the title")
	require.NoError(t, err)
	doc, err = ApplyEdit(doc, section.Purpose, "the purpose")
	require.NoError(t, err)

	// Rewriting TITLE must not disturb PURPOSE's block.
	doc2, err := ApplyEdit(doc, section.Title, "a different title")
	require.NoError(t, err)

	assert.Contains(t, doc2, "% start:PURPOSE\nthe purpose\n% end:PURPOSE")
	assert.Contains(t, doc2, "a different title")
	assert.NotContains(t, doc2, "the title\n")
}

func TestApplyEditTrimsContent(t *testing.T) {
	got, err := ApplyEdit(miniDoc, section.Title, "\n  padded  \n")
	require.NoError(t, err)
	assert.Contains(t, got, "% start:TITLE\npadded\n% end:TITLE")
}

func TestApplyEditMultilineContent(t *testing.T) {
	got, err := ApplyEdit(miniDoc, section.Title, "line one\nline two")
	require.NoError(t, err)
	assert.Contains(t, got, "% start:TITLE\nline one\nline two\n% end:TITLE")

	// Overwrite still removes the whole block.
	got, err = ApplyEdit(got, section.Title, "single")
	require.NoError(t, err)
	assert.NotContains(t, got, "line one")
	assert.NotContains(t, got, "line two")
	assert.Equal(t, 1, strings.Count(got, "% start:TITLE"))
}

func TestApplyEditPlaceholderMissing(t *testing.T) {
	doc := "no placeholders here"
	got, err := ApplyEdit(doc, section.Purpose, "x")

	require.ErrorIs(t, err, ErrPlaceholderNotFound)
	// Document must come back byte-for-byte unchanged.
	assert.Equal(t, doc, got)
}
