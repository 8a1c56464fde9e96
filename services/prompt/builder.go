package prompt

import (
	"strconv"
	"strings"

	"github.com/customeros/replycraft/dto"
	"github.com/customeros/replycraft/internal/enum"
	"github.com/customeros/replycraft/internal/utils"
)

const neutralToneInstruction = `Use a neutral, professional tone.
`

const formalToneInstruction = `Use a formal and professional tone.
- Polite and respectful
- Full sentences, no slang
- Slightly more structured and detailed
`

const friendlyToneInstruction = `Use a warm, friendly, yet professional tone.
- Polite and approachable
- You may use light contractions (I'm, we'll)
- Keep it positive and conversational
`

const conciseToneInstruction = `Use a concise professional tone.
- Focus on the key points only
- Avoid repetition and filler phrases
- Aim for a short, clear reply
`

const contextToneInstruction = `Use a professional tone that matches the context of the thread.
`

const preamble = `You are an assistant that drafts polished email replies on behalf of the user.

Objectives:
- Reply to the LAST email in the conversation.
- Be clear, helpful, and professional.
- Address all explicit questions and requests in the latest message.
`

const writingGuidelines = `Writing guidelines:
- Start with an appropriate greeting (e.g., "Hi Alice,").
- Briefly acknowledge the latest email.
- Then provide a clear and structured response.
- If some concrete detail is missing (e.g., a date, file name, link),
  use a short placeholder like [date], [link], or [file name] dont add date on your own if not sure.
- Do NOT invent facts, promises, discounts, or dates that are not supported by the thread.
- Do NOT repeat or quote the entire thread.
- Do NOT include a subject line.
- Do NOT include headers like "From:", "To:", or "Subject:" in your reply.
`

const thinkFirstInstruction = `Think carefully about the conversation before responding.
Your final output must be only the email body the user will send.
`

const threadTask = `End of thread.

Task:
Write the reply email body as the recipient of the LAST message in this thread.
Output only the email body, nothing else.
`

const singleMessageTask = `Task:
Write the reply email body as the recipient of this email.
Output only the email body, nothing else.
`

// ToneInstruction returns the instruction block for a raw tone label.
func ToneInstruction(tone *string) string {
	switch enum.ParseTone(utils.StringOrEmpty(tone)) {
	case enum.ToneNeutral:
		return neutralToneInstruction
	case enum.ToneFormal:
		return formalToneInstruction
	case enum.ToneFriendly:
		return friendlyToneInstruction
	case enum.ToneConcise:
		return conciseToneInstruction
	default:
		return contextToneInstruction
	}
}

// BuildPrompt renders the request into the single text prompt sent to the
// model. The output depends only on the request.
func BuildPrompt(request dto.GenerateReplyRequest) string {
	var sb strings.Builder

	sb.WriteString(preamble)
	sb.WriteString("\n")

	sb.WriteString("Tone:\n")
	sb.WriteString(ToneInstruction(request.Tone))
	sb.WriteString("\n")

	sb.WriteString(writingGuidelines)
	sb.WriteString("\n")

	sb.WriteString(thinkFirstInstruction)
	sb.WriteString("\n\n")

	if utils.IsPresent(request.Subject) {
		sb.WriteString("Subject of the email thread: ")
		sb.WriteString(*request.Subject)
		sb.WriteString("\n\n")
	}

	if request.HasMessages() {
		writeThread(&sb, request.Messages)
		sb.WriteString(threadTask)
	} else {
		sb.WriteString("Original email (single message):\n")
		sb.WriteString(utils.StringOrEmpty(request.EmailContent))
		sb.WriteString("\n\n")
		sb.WriteString(singleMessageTask)
	}

	return sb.String()
}

func writeThread(sb *strings.Builder, messages []dto.EmailMessage) {
	sb.WriteString("Email thread (oldest first):\n")

	for i, msg := range messages {
		sb.WriteString("---- Message ")
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(" ----\n")

		if utils.IsPresent(msg.Sender) {
			sb.WriteString("From: ")
			sb.WriteString(*msg.Sender)
			sb.WriteString("\n")
		}
		if utils.IsPresent(msg.Recipient) {
			sb.WriteString("To: ")
			sb.WriteString(*msg.Recipient)
			sb.WriteString("\n")
		}

		sb.WriteString("Body:\n")
		sb.WriteString(utils.StringOrEmpty(msg.Body))
		sb.WriteString("\n\n")
	}
}
