package query

import "testing"

func TestIsLegacyRoute(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"entities/123", true},
		{"entity/create", true},
		{"users", true},
		{"user/me", true},
		{"user/profile/someone", false},
		{"math/pythagorean-theorem", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := isLegacyRoute(tc.path); got != tc.want {
			t.Errorf("isLegacyRoute(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestUsernameProfileRe(t *testing.T) {
	match := usernameProfileRe.FindStringSubmatch("user/profile/jdoe")
	if match == nil || match[1] != "jdoe" {
		t.Fatalf("expected to capture username, got %v", match)
	}

	if usernameProfileRe.MatchString("user/settings") {
		t.Fatal("user/settings should not match the profile route")
	}
}

func TestIDTitleRe(t *testing.T) {
	match := idTitleRe.FindStringSubmatch("math/fa472d57-1bf1-4850-9a4a-3c4e3d42fb91/pythagorean-theorem")
	if match == nil {
		t.Fatal("expected id/title route to match")
	}

	if match[1] != "math" || match[3] != "pythagorean-theorem" {
		t.Fatalf("unexpected capture groups: %#v", match)
	}

	if idTitleRe.MatchString("not-an-id/title") {
		t.Fatal("non-uuid segment should not match")
	}
}
