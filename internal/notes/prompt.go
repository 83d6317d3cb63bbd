package notes

import "fmt"

// notesPrompt receives the transcript verbatim. Nothing is escaped, so a
// transcript can carry instructions of its own.
const notesPrompt = `I need you to organize the following transcript into professionally structured notes.

Rules:
1. Identify key topics and create a clear hierarchical structure with main headings and subheadings
2. Use bullet points for important details and key points
3. Use numbered lists for sequential steps, prioritized items, or chronological information
4. Group related information together logically
5. Highlight important concepts, definitions, actionable items, and key terms
6. Maintain a professional flow and clear hierarchy suitable for business or academic settings
7. Correct grammar and clarity issues, but preserve all meaningful information
8. Remove filler words, redundancies, and informal speech patterns
9. Start with a concise summary if the content is substantial
10. End with a conclusion or next steps section when appropriate

Here is the transcript:
%s

Format the notes with:
- Main section headings (markdown #)
- Subsection headings (markdown ## and ###)
- Bullet points (- ) for key details and facts
- Numbered lists for sequential steps or prioritized items
- **Bold text** for important terms and concepts
- *Italic text* for definitions or specialized terminology
- > Blockquotes for direct quotations or important statements
- Paragraphs separated by blank lines

The result should be highly readable, professional notes that organize the information effectively.`

// BuildPrompt interpolates the transcript into the notes prompt.
func BuildPrompt(transcript string) string {
	return fmt.Sprintf(notesPrompt, transcript)
}
