package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"todoapp/internal/exitcode"
	"todoapp/internal/service"
)

// lookupTask fetches one task by id and reports failures itself.
// ok is false when the caller should return code.
func lookupTask(ctx context.Context, svc service.Service, id service.TaskID, errOut io.Writer) (task service.Task, code int, ok bool) {
	task, err := svc.GetTask(ctx, id)
	if err == nil {
		return task, exitcode.Success, true
	}

	var re *service.RemoteError
	if errors.As(err, &re) && re.StatusCode == http.StatusNotFound {
		fmt.Fprintf(errOut, "error: task not found: %s\n", id)
		return service.Task{}, exitcode.UserError, false
	}
	fmt.Fprintf(errOut, "error: backend error: %v\n", err)
	return service.Task{}, exitcode.For(err), false
}
