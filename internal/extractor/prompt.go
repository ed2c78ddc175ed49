package extractor

import "fmt"

// extractionPromptTemplate is the fixed instruction prompt the model was
// fine-tuned against. The six keys and the "N/A" convention are part of the
// training format and must not change.
const extractionPromptTemplate = `### Instruction:
Extract the following information from the job description in a structured JSON format.
The JSON should have exactly these keys: "Core Responsibilities", "Required Skills", "Educational Requirements", "Experience Level", "Preferred Qualifications", "Compensation and Benefits".
If information for a key is not present, use "N/A".

Job Title: %s
Company: %s
Job Description:
%s
`

// BuildPrompt constructs the instruction prompt for one extraction request.
func BuildPrompt(jobTitle, company, jobDescription string) string {
	return fmt.Sprintf(extractionPromptTemplate, jobTitle, company, jobDescription)
}
