package mailer

import (
	"context"
	"encoding/json"
	"fmt"
)

// Deliver decodes one queued job, renders it and hands it to s. Errors
// wrapping ErrBadJob will never succeed and should not be retried.
func Deliver(ctx context.Context, s Sender, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: %v", ErrBadJob, err)
	}
	subject, text, html, err := Compose(job)
	if err != nil {
		return err
	}
	return s.Send(ctx, job.To, subject, text, html)
}
