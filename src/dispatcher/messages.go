package dispatcher

import "fmt"

// User-visible replies.
const (
	MsgWrongChannel   = "❌ Commands can only be used in the designated channel."
	MsgBusy           = "⏳ Bot is busy processing another request. Please wait a moment."
	MsgUnknownCommand = "❌ Unknown command."
	MsgMissingID      = "❌ Please provide an ID."
	MsgNoData         = "❌ No data found or API returned failure."
	MsgGenericFailure = "❌ An error occurred while processing your request."
)

func msgFetchFailed(status int) string {
	return fmt.Sprintf("❌ Failed to fetch data: %d", status)
}
