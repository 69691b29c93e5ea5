package constvars

const (
	URLParamSessionID  = "session_id"
	URLParamSnapshotID = "snapshot_id"
)

const (
	RegexLanguageCode = `^[a-z]{2,3}$`
)
