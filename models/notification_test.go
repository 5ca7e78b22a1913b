package models

import "testing"

func TestNotificationReadBySet(t *testing.T) {
	n := Notification{ReadBy: "[]"}

	if n.IsReadBy(3) {
		t.Fatal("empty set reported a reader")
	}
	if !n.MarkReadBy(3) {
		t.Fatal("first read not recorded")
	}
	if !n.IsReadBy(3) {
		t.Fatal("reader not found after marking")
	}
	if n.MarkReadBy(3) {
		t.Fatal("second mark for the same user should be a no-op")
	}

	if !n.MarkReadBy(9) {
		t.Fatal("second reader not recorded")
	}
	ids := n.ReadByIDs()
	if len(ids) != 2 || ids[0] != 3 || ids[1] != 9 {
		t.Fatalf("unexpected reader set %v", ids)
	}
}

func TestNotificationReadByMalformedColumn(t *testing.T) {
	n := Notification{ReadBy: "{not json"}

	if n.IsReadBy(1) {
		t.Fatal("malformed column must read as empty")
	}
	if !n.MarkReadBy(1) {
		t.Fatal("marking must recover from a malformed column")
	}
	if n.ReadBy != "[1]" {
		t.Fatalf("unexpected encoded set %q", n.ReadBy)
	}
}

func TestIsValidCourse(t *testing.T) {
	for _, c := range Courses {
		if !IsValidCourse(c) {
			t.Errorf("offered course %q rejected", c)
		}
	}
	if IsValidCourse("Robotics") || IsValidCourse("") {
		t.Error("unknown course accepted")
	}
}
