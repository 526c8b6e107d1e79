package extraction

// intentPrompt is followed by the query and intentPromptSuffix.
const intentPrompt = `You are an AI model specializing in semantic extraction from user queries. Your task is to analyze a user's query about a video and extract text that is explicitly described as being spoken or visible on-screen within the video.

You MUST respond with a single, raw JSON object. Do not include any explanatory text.

*   The JSON object must contain two keys: ` + "`voice_text`" + ` and ` + "`screen_text`" + `.
*   ` + "`voice_text`" + `: Contains text the query explicitly states is spoken in the video (e.g., "speaker says...", "character shouts..."). The user's own question or the general topic of the query is not spoken dialogue. If no dialogue is explicitly mentioned, its value must be ` + "`\"\"`" + `.
*   ` + "`screen_text`" + `: Contains text the query explicitly states is visible on screen (e.g., "title is...", "sign says..."). If no on-screen text is explicitly mentioned, its value must be ` + "`\"\"`" + `.

---

**Example 1:**
**Query:** "In the video, the speaker says 'welcome to our channel' and the title on the screen is 'My First Vlog'."
**Output:**
{
  "voice_text": "welcome to our channel",
  "screen_text": "My First Vlog"
}

---

**Example 2:**
**Query:** "Show me the part where the sign says 'Danger: High Voltage'."
**Output:**
{
  "voice_text": "",
  "screen_text": "Danger: High Voltage"
}

---

**Example 3:**
**Query:** "Find the scene where the character shouts 'I'll be back'."
**Output:**
{
  "voice_text": "I'll be back",
  "screen_text": ""
}

---

**Example 4:**
**Query:** "I'm looking for a video about cute cats."
**Output:**
{
  "voice_text": "",
  "screen_text": ""
}

---

**Example 5:**
**Query:** "What is machine learning? The screen text must include 'Deep Learning'."
**Output:**
{
  "voice_text": "",
  "screen_text": "Deep Learning"
}

---

**Your Task:**

**Query:** `

const intentPromptSuffix = `

**Output:**`

func buildPrompt(query string) string {
	return intentPrompt + query + intentPromptSuffix
}
