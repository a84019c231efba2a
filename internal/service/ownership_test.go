package service

import (
	"errors"
	"testing"
)

func TestCheckOwnership(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		ownerID  int64
		callerID int64
		wantErr  bool
	}{
		{"owner matches", 1, 1, false},
		{"different user", 1, 2, true},
		{"zero caller", 1, 0, true},
		{"zero owner and caller", 0, 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOwnership(tc.ownerID, tc.callerID)
			if tc.wantErr && !errors.Is(err, ErrNotOwner) {
				t.Errorf("CheckOwnership(%d, %d) = %v, want ErrNotOwner", tc.ownerID, tc.callerID, err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("CheckOwnership(%d, %d) = %v, want nil", tc.ownerID, tc.callerID, err)
			}
		})
	}
}
