package uuidmodel

import "testing"

func TestDiscriminator_Untrashable(t *testing.T) {
	cases := []struct {
		d    Discriminator
		want bool
	}{
		{DiscriminatorEntityRevision, true},
		{DiscriminatorUser, true},
		{DiscriminatorEntity, false},
		{DiscriminatorPage, false},
		{DiscriminatorComment, false},
		{DiscriminatorTaxonomyTerm, false},
		{DiscriminatorPageRevision, false},
		{DiscriminatorAttachment, false},
		{DiscriminatorBlogPost, false},
	}

	for _, tc := range cases {
		if got := tc.d.Untrashable(); got != tc.want {
			t.Errorf("%s.Untrashable() = %v, want %v", tc.d, got, tc.want)
		}
	}
}
