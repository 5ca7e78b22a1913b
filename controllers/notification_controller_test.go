package controllers

import (
	"database/sql/driver"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// A principal can only mark notices the visibility scope addresses to them;
// the fetch carries the same user/role/course filter as the listing, so a
// foreign notification id comes back as not found.
func TestMarkNotificationReadScopedToPrincipal(t *testing.T) {
	state := useScriptedDB(t, []*queryStep{
		{
			kind: kindQuery,
			pattern: regexp.MustCompile(
				`^SELECT \* FROM ` + "`notifications`" + ` WHERE \(user_id = \? OR \(user_id IS NULL AND role IN \(\?,\?\)\)\) AND \(course IS NULL OR course = \?\) AND notification_id = \? ORDER BY`),
			columns: []string{"notification_id"},
			rows:    [][]driver.Value{},
		},
	})

	c, w := testRequest(t, teacherPrincipal("DBMS"), "/api/notifications/5/read")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	MarkNotificationRead(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a notice outside the caller's scope, got %d: %s", w.Code, w.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	state := useScriptedDB(t, []*queryStep{
		{
			kind: kindQuery,
			pattern: regexp.MustCompile(
				`^SELECT \* FROM ` + "`notifications`" + ` WHERE \(user_id = \? OR \(user_id IS NULL AND role IN \(\?,\?\)\)\) AND notification_id = \? ORDER BY`),
			columns: []string{"notification_id", "title", "message", "role", "read_by", "created_at"},
			rows: [][]driver.Value{
				{int64(5), "Application rejected by Head", "msg", "HEAD", "[]", created},
			},
		},
		{
			kind: kindExec,
			pattern: regexp.MustCompile(
				`^UPDATE ` + "`notifications`" + ` SET ` + "`read_by`" + `=\?.* WHERE notification_id = \?`),
			result: scriptedResult{rowsAffected: 1},
		},
	})

	c, w := testRequest(t, headPrincipal(), "/api/notifications/5/read")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	MarkNotificationRead(c)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}

func TestMarkNotificationReadAlreadyRead(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	state := useScriptedDB(t, []*queryStep{
		{
			kind: kindQuery,
			pattern: regexp.MustCompile(
				`^SELECT \* FROM ` + "`notifications`" + ` WHERE \(user_id = \? OR \(user_id IS NULL AND role IN \(\?,\?\)\)\) AND notification_id = \? ORDER BY`),
			columns: []string{"notification_id", "title", "message", "role", "read_by", "created_at"},
			rows: [][]driver.Value{
				{int64(5), "Application rejected by Head", "msg", "HEAD", "[1]", created},
			},
		},
		// No UPDATE: the caller is already in the reader set.
	})

	c, w := testRequest(t, headPrincipal(), "/api/notifications/5/read")
	c.Params = gin.Params{{Key: "id", Value: "5"}}
	MarkNotificationRead(c)

	if w.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", w.Code, w.Body.String())
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("unexpected remaining steps: %v", err)
	}
}
