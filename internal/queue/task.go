package queue

import (
	"strconv"
	"strings"
)

type TaskType string

const (
	TaskTypeThreadsDeleted    TaskType = "threads_deleted"
	TaskTypeMessagesDeleted   TaskType = "messages_deleted"
	TaskTypeReferencesDeleted TaskType = "references_deleted"
)

// CleanupTask asks the cleanup worker to re-check a set of files for
// orphanhood after a deletion committed. FileIDs are the candidates the
// deleting transaction collected before removing the linking rows.
type CleanupTask struct {
	TaskType TaskType
	OrgID    int64
	FileIDs  []int64
	TraceID  *string
	Attempt  int
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) ([]int64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
