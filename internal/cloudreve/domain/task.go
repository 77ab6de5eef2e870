package domain

import (
	"encoding/json"
	"sort"
)

// Task is a remote-download job as the workflow endpoint reports it. Only the
// fields the core inspects are modeled.
type Task struct {
	ID      string      `json:"id"`
	Status  string      `json:"status"`
	Summary TaskSummary `json:"summary"`
}

// TaskSummary nests the task properties under the wire layout.
type TaskSummary struct {
	Props TaskProps `json:"props"`
}

// TaskProps carries the source URL and download details of a task.
type TaskProps struct {
	SrcStr   string       `json:"src_str"`
	Download TaskDownload `json:"download"`
}

// TaskDownload describes the fetched payload of a task.
type TaskDownload struct {
	Name  string     `json:"name"`
	Files FilesField `json:"files"`
}

// FilesField tolerates the two shapes the service uses for a task's files:
// a single object or a sequence. For a sequence, progress is taken from the
// first element.
type FilesField struct {
	Progress float64 `json:"progress"`
}

// UnmarshalJSON accepts either an object or an array of objects.
func (f *FilesField) UnmarshalJSON(data []byte) error {
	type plain FilesField

	var single plain
	if err := json.Unmarshal(data, &single); err == nil {
		*f = FilesField(single)
		return nil
	}

	var many []plain
	if err := json.Unmarshal(data, &many); err == nil {
		if len(many) > 0 {
			*f = FilesField(many[0])
		}
		return nil
	}

	// Unknown shape; leave zero rather than failing the whole task list.
	*f = FilesField{}
	return nil
}

// TaskStatus is the condensed view of a matched task handed back to callers.
type TaskStatus struct {
	Name     string  `json:"name"`
	Status   string  `json:"status"`
	Progress float64 `json:"progress"`
}

// taskListKeys are the names the service has used for the task array inside
// data, in probe order.
var taskListKeys = []string{"task", "items", "list", "workflows"}

// ExtractTasks pulls the task array out of a workflow-list payload. It accepts
// both the full response envelope and a bare data object, probing the known
// key names first and falling back to the first array-valued field.
func ExtractTasks(raw json.RawMessage) []Task {
	if len(raw) == 0 {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	// Descend into data when handed the full envelope.
	if inner, ok := fields["data"]; ok {
		var innerFields map[string]json.RawMessage
		if err := json.Unmarshal(inner, &innerFields); err == nil {
			fields = innerFields
		}
	}

	for _, key := range taskListKeys {
		if tasks, ok := decodeTaskArray(fields[key]); ok {
			return tasks
		}
	}

	// Last resort: first array-valued field, in stable key order.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if tasks, ok := decodeTaskArray(fields[k]); ok {
			return tasks
		}
	}
	return nil
}

func decodeTaskArray(raw json.RawMessage) ([]Task, bool) {
	if len(raw) == 0 || raw[0] != '[' {
		return nil, false
	}
	var tasks []Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, false
	}
	return tasks, true
}
