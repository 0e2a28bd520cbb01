package email

const (
	subjectLeadReceived      = "Thanks for reaching out"
	subjectStatusContacted   = "We'd love to talk"
	subjectStatusNegotiation = "Your proposal is ready"
	subjectStatusClosed      = "Welcome aboard"
	subjectFollowUpReminder  = "Follow-up due: %s"
)
