package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"vetclinic-service/internal/domain"
)

func TestAuditShutdownDrainsBufferedEntries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.audit.Record(ctx, domain.ActionBook, 1, 10, testNow)
	env.audit.Record(ctx, domain.ActionCancel, 1, 0, testNow)
	env.audit.Shutdown()

	assert.Equal(t, 2, env.auditRepo.count())
}

func TestAuditRecordAfterShutdownIsDropped(t *testing.T) {
	env := newTestEnv(t)
	env.audit.Shutdown()

	assert.NotPanics(t, func() {
		env.audit.Record(context.Background(), domain.ActionBook, 1, 10, testNow)
	})
	assert.Zero(t, env.auditRepo.count())
}

func TestAuditShutdownIsIdempotent(t *testing.T) {
	env := newTestEnv(t)

	assert.NotPanics(t, func() {
		env.audit.Shutdown()
		env.audit.Shutdown()
	})
}
