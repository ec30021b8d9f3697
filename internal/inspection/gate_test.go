package inspection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/rainadr/veripass/internal/models"
)

func memberOf(orgID uuid.UUID, userIDs ...uuid.UUID) membershipFunc {
	return func(userID, queriedOrg uuid.UUID) bool {
		if queriedOrg != orgID {
			return false
		}
		for _, id := range userIDs {
			if id == userID {
				return true
			}
		}
		return false
	}
}

func TestActGranted(t *testing.T) {
	organizerID := uuid.New()
	inspectorID := uuid.New()
	strangerID := uuid.New()
	orgID := uuid.New()
	otherOrgID := uuid.New()

	orgEvent := &models.Event{UserID: organizerID, OrganizationID: &orgID}
	soloEvent := &models.Event{UserID: organizerID}
	membership := memberOf(orgID, inspectorID)

	cases := []struct {
		name        string
		event       *models.Event
		inspectorID uuid.UUID
		activeOrgID *uuid.UUID
		want        bool
	}{
		{"organizer without active org", orgEvent, organizerID, nil, true},
		{"organizer with active org", orgEvent, organizerID, &orgID, true},
		{"member of the event's org", orgEvent, inspectorID, &orgID, true},
		{"member without declared org", orgEvent, inspectorID, nil, false},
		{"non-member of the event's org", orgEvent, strangerID, &orgID, false},
		{"member of a different org", orgEvent, inspectorID, &otherOrgID, false},
		{"event outside any org", soloEvent, inspectorID, &orgID, false},
		{"unrelated inspector", orgEvent, strangerID, nil, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, actGranted(tc.event, tc.inspectorID, tc.activeOrgID, membership))
		})
	}
}

func TestActGrantedNeverConsultsMembershipForOrganizer(t *testing.T) {
	organizerID := uuid.New()
	orgID := uuid.New()
	event := &models.Event{UserID: organizerID, OrganizationID: &orgID}

	called := false
	granted := actGranted(event, organizerID, &orgID, func(userID, queriedOrg uuid.UUID) bool {
		called = true
		return false
	})
	assert.True(t, granted)
	assert.False(t, called)
}

func TestReconcileGranted(t *testing.T) {
	inspectorID := uuid.New()
	orgID := uuid.New()
	otherOrgID := uuid.New()
	membership := memberOf(orgID, inspectorID)

	cases := []struct {
		name        string
		role        string
		activeOrgID *uuid.UUID
		want        bool
	}{
		{"organizer role", "organizer", nil, true},
		{"inspector with org membership", "inspector", &orgID, true},
		{"inspector without declared org", "inspector", nil, false},
		{"inspector in a different org", "inspector", &otherOrgID, false},
		{"attendee with org membership", "attendee", &orgID, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, reconcileGranted(tc.role, inspectorID, tc.activeOrgID, membership))
		})
	}
}
