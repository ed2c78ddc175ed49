package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name            string
		document        string
		wantResume      string
		wantCoverLetter string
		wantError       bool
	}{
		{
			name:            "Resume and labeled cover letter",
			document:        "\\documentclass{article}...\\end{document}**Cover Letter**\nDear Hiring Manager,...",
			wantResume:      "\\documentclass{article}...\\end{document}",
			wantCoverLetter: "Dear Hiring Manager,...",
		},
		{
			name:            "Cover letter without label",
			document:        "\\documentclass{article}\n\\begin{document}hi\\end{document}\n\nDear Team,\nregards",
			wantResume:      "\\documentclass{article}\n\\begin{document}hi\\end{document}",
			wantCoverLetter: "Dear Team,\nregards",
		},
		{
			// Fences are stripped from the resume part only; a closing
			// fence landing after the marker stays in the cover letter.
			name:            "Fenced resume block",
			document:        "```latex\n\\documentclass{article}\\end{document}\n```\nDear Hiring Manager,",
			wantResume:      "\\documentclass{article}\\end{document}",
			wantCoverLetter: "```\nDear Hiring Manager,",
		},
		{
			name:            "Plain fence without language tag",
			document:        "```\n\\documentclass{article}\\end{document}\n```\nHello,",
			wantResume:      "\\documentclass{article}\\end{document}",
			wantCoverLetter: "```\nHello,",
		},
		{
			name:            "Label only stripped at the start",
			document:        "x\\end{document}Dear Team,\nas noted in the **Cover Letter** above.",
			wantResume:      "x\\end{document}",
			wantCoverLetter: "Dear Team,\nas noted in the **Cover Letter** above.",
		},
		{
			name:      "Marker absent",
			document:  "\\documentclass{article} no terminator here",
			wantError: true,
		},
		{
			name:      "Empty document",
			document:  "",
			wantError: true,
		},
		{
			name:            "Splits at first marker only",
			document:        "a\\end{document}b\\end{document}c",
			wantResume:      "a\\end{document}",
			wantCoverLetter: "b\\end{document}c",
		},
		{
			name:            "Empty cover letter",
			document:        "\\documentclass{article}\\end{document}   ",
			wantResume:      "\\documentclass{article}\\end{document}",
			wantCoverLetter: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resume, coverLetter, err := Split(tt.document)
			if tt.wantError {
				require.Error(t, err)
				var formatErr *FormatError
				assert.ErrorAs(t, err, &formatErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantResume, resume)
			assert.Equal(t, tt.wantCoverLetter, coverLetter)
		})
	}
}

func TestSplitResumeEndsAtMarker(t *testing.T) {
	document := "\\documentclass{article}\\end{document}\nDear Hiring Manager,"
	resume, _, err := Split(document)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(resume, EndDocumentMarker))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Resume:      filepath.Join(dir, "generated_resume.tex"),
		CoverLetter: filepath.Join(dir, "cover_letter.txt"),
	}

	document := "\\documentclass{article}...\\end{document}**Cover Letter**\nDear Hiring Manager,..."
	require.NoError(t, Write(document, paths))

	resume, err := os.ReadFile(paths.Resume)
	require.NoError(t, err)
	assert.Equal(t, "\\documentclass{article}...\\end{document}", string(resume))

	coverLetter, err := os.ReadFile(paths.CoverLetter)
	require.NoError(t, err)
	assert.Equal(t, "Dear Hiring Manager,...", string(coverLetter))
}

func TestWriteOverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Resume:      filepath.Join(dir, "generated_resume.tex"),
		CoverLetter: filepath.Join(dir, "cover_letter.txt"),
	}

	require.NoError(t, os.WriteFile(paths.Resume, []byte("stale resume content that is longer"), 0o644))
	require.NoError(t, os.WriteFile(paths.CoverLetter, []byte("stale letter"), 0o644))

	require.NoError(t, Write("x\\end{document}y", paths))

	resume, err := os.ReadFile(paths.Resume)
	require.NoError(t, err)
	assert.Equal(t, "x\\end{document}", string(resume))

	coverLetter, err := os.ReadFile(paths.CoverLetter)
	require.NoError(t, err)
	assert.Equal(t, "y", string(coverLetter))
}

func TestWriteMissingMarkerWritesNothing(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		Resume:      filepath.Join(dir, "generated_resume.tex"),
		CoverLetter: filepath.Join(dir, "cover_letter.txt"),
	}

	err := Write("no marker here", paths)
	require.Error(t, err)

	_, statErr := os.Stat(paths.Resume)
	assert.True(t, os.IsNotExist(statErr))
	_, statErr = os.Stat(paths.CoverLetter)
	assert.True(t, os.IsNotExist(statErr))
}
