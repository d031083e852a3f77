package analyzer

// systemPrompt pins the response contract. The json_object response format
// keeps models honest, but the schema itself is enforced by parseContent.
const systemPrompt = `You are an assistant that analyzes meeting transcripts.
Respond with a single JSON object and nothing else, using exactly this schema:
{
  "executive_summary": "a concise summary of the meeting",
  "action_items": [{"task": "what needs to be done", "owner": "who is responsible"}]
}
Use "unassigned" as the owner when no responsible person can be identified.
Return an empty action_items array when the transcript contains none.`

// userMessage wraps the transcript for the completion request. The
// transcript is passed through verbatim.
func userMessage(transcript string) string {
	return "Analyze the following meeting transcript and extract the executive summary and action items:\n\n" + transcript
}
