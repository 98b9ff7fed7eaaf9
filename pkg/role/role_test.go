package role

import "testing"

func TestParseRole(t *testing.T) {
	cases := []struct {
		in  string
		out Role
	}{
		{"", -1},
		{"foo", -1},
		{Owner.String(), Owner},
		{Admin.String(), Admin},
		{Member.String(), Member},
		{NoRole.String(), NoRole},
	}

	for _, c := range cases {
		out := ParseRole(c.in)
		if out != c.out {
			t.Errorf("ParseRole(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}

func TestRoleOrdering(t *testing.T) {
	if !(Owner > Admin && Admin > Member && Member > NoRole) {
		t.Error("role precedence must be owner > admin > member > none")
	}
}

func TestIsManager(t *testing.T) {
	cases := []struct {
		in  Role
		out bool
	}{
		{Owner, true},
		{Admin, true},
		{Member, false},
		{NoRole, false},
	}

	for _, c := range cases {
		if got := c.in.IsManager(); got != c.out {
			t.Errorf("%s.IsManager() => %v, want %v", c.in, got, c.out)
		}
	}
}

func TestParseUserType(t *testing.T) {
	cases := []struct {
		in  string
		out UserType
	}{
		{"", -1},
		{"bar", -1},
		{TypeAdmin.String(), TypeAdmin},
		{TypePhotographer.String(), TypePhotographer},
		{TypeClient.String(), TypeClient},
	}

	for _, c := range cases {
		out := ParseUserType(c.in)
		if out != c.out {
			t.Errorf("ParseUserType(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}
