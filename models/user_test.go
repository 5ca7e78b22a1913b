package models

import "testing"

func TestAddPushTokenDeduplicates(t *testing.T) {
	u := &User{PushTokens: "[]"}

	if !u.AddPushToken("ExponentPushToken[one]") {
		t.Fatal("first registration rejected")
	}
	if u.AddPushToken("ExponentPushToken[one]") {
		t.Fatal("duplicate registration accepted")
	}
	if !u.AddPushToken("ExponentPushToken[two]") {
		t.Fatal("second distinct token rejected")
	}

	tokens := u.PushTokenList()
	if len(tokens) != 2 || tokens[0] != "ExponentPushToken[one]" || tokens[1] != "ExponentPushToken[two]" {
		t.Fatalf("unexpected token list: %v", tokens)
	}
}

func TestPushTokenListMalformedColumn(t *testing.T) {
	u := &User{PushTokens: "{not json"}
	if tokens := u.PushTokenList(); tokens != nil {
		t.Fatalf("malformed column must yield nil, got %v", tokens)
	}

	// Registration recovers by starting a fresh list.
	if !u.AddPushToken("ExponentPushToken[one]") {
		t.Fatal("registration after malformed column rejected")
	}
	if tokens := u.PushTokenList(); len(tokens) != 1 {
		t.Fatalf("expected 1 token, got %v", tokens)
	}
}

func TestPushTokenListEmptyColumn(t *testing.T) {
	u := &User{}
	if tokens := u.PushTokenList(); tokens != nil {
		t.Fatalf("empty column must yield nil, got %v", tokens)
	}
}
