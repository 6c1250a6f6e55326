package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vetclinic-service/internal/service"
)

var _ service.AuditRepository = (*AuditRepository)(nil)

func TestOrderClauseWhitelist(t *testing.T) {
	allowed := map[string]string{"name": "name", "surname": "surname"}

	assert.Equal(t, "name", orderClause("name", allowed, "id"))
	assert.Equal(t, "surname", orderClause("surname", allowed, "id"))
	assert.Equal(t, "id", orderClause("", allowed, "id"))
	assert.Equal(t, "id", orderClause("id; DROP TABLE customers", allowed, "id"))
}
