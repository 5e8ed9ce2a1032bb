package queue

type TaskType string

const (
	// TaskTypeGenerateMessages asks the worker to generate outreach messages
	// for one lead under one campaign.
	TaskTypeGenerateMessages TaskType = "generate_messages"
)

type Task struct {
	TaskType    TaskType
	WorkspaceID int64
	LeadID      int64
	CampaignID  int64
	SenderID    int64 // user the messages are written on behalf of
	TraceID     *string
	Attempt     int
}
