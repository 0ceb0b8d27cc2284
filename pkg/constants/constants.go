package constants

const (
	// BranchPrefix is the first path component of every snapshot branch.
	BranchPrefix = "snapshots"

	// SnapshotNameLayout is the time layout used for snapshot names.
	SnapshotNameLayout = "2006-01-02_15-04-05"
)

// git config keys holding per-world settings.
const (
	WorldID               = "fastback.world-uuid"
	LocalRetentionPolicy  = "fastback.local-retention-policy"
	RemoteRetentionPolicy = "fastback.remote-retention-policy"
)

// message catalog keys.
const (
	MessageLocalPolicyNotSet  = "fastback.chat.retention-policy-not-set"
	MessageRemotePolicyNotSet = "fastback.chat.remote-retention-policy-not-set"
	MessagePruneStarted       = "fastback.hud.prune-started"
	MessagePruneDone          = "fastback.hud.prune-done"
	MessagePruneFailed        = "fastback.chat.prune-failed"
)
