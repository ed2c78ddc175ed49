package output

import (
	"fmt"
	"os"
)

// Default output filenames, overwritten on every successful generation.
const (
	DefaultResumePath      = "generated_resume.tex"
	DefaultCoverLetterPath = "cover_letter.txt"
)

// Paths holds the destination files for a split document.
type Paths struct {
	Resume      string
	CoverLetter string
}

// DefaultPaths returns the well-known output filenames.
func DefaultPaths() Paths {
	return Paths{
		Resume:      DefaultResumePath,
		CoverLetter: DefaultCoverLetterPath,
	}
}

// Write splits the generated document and writes both parts as UTF-8 text,
// truncating any previous output. The resume is written first; a failure
// before the cover letter write leaves the pair inconsistent, which callers
// treat as a failed run.
func Write(document string, paths Paths) error {
	resume, coverLetter, err := Split(document)
	if err != nil {
		return err
	}

	if err := os.WriteFile(paths.Resume, []byte(resume), 0o644); err != nil {
		return fmt.Errorf("failed to write resume to %s: %w", paths.Resume, err)
	}
	if err := os.WriteFile(paths.CoverLetter, []byte(coverLetter), 0o644); err != nil {
		return fmt.Errorf("failed to write cover letter to %s: %w", paths.CoverLetter, err)
	}
	return nil
}
