package crypt

import "testing"

func TestHash(t *testing.T) {
	// Known SHA-256 vector.
	if got := Hash("abc"); got != "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad" {
		t.Errorf("unexpected digest: %s", got)
	}
	if Hash("token-a") == Hash("token-b") {
		t.Error("distinct inputs collided")
	}
}
