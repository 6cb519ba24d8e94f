package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignupRequestValidate(t *testing.T) {
	tests := []struct {
		name       string
		req        SignupRequest
		wantFields []string
	}{
		{
			name: "valid",
			req: SignupRequest{
				Name:        "Asha",
				Email:       "Asha@Example.com ",
				CountryCode: "+91",
				PhoneNo:     "9876543210",
				Password:    "secret",
			},
			wantFields: nil,
		},
		{
			name: "bad email and country code",
			req: SignupRequest{
				Name:        "Asha",
				Email:       "not-an-email",
				CountryCode: "91",
				PhoneNo:     "9876543210",
				Password:    "secret",
			},
			wantFields: []string{"email", "countryCode"},
		},
		{
			name: "short phone",
			req: SignupRequest{
				Name:        "Asha",
				Email:       "asha@example.com",
				CountryCode: "+91",
				PhoneNo:     "12345",
				Password:    "secret",
			},
			wantFields: []string{"phoneNo"},
		},
		{
			name: "non numeric phone",
			req: SignupRequest{
				Name:        "Asha",
				Email:       "asha@example.com",
				CountryCode: "+91",
				PhoneNo:     "98765abc10",
				Password:    "secret",
			},
			wantFields: []string{"phoneNo"},
		},
		{
			name:       "everything missing",
			req:        SignupRequest{},
			wantFields: []string{"name", "email", "countryCode", "phoneNo", "password"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := tt.req.Validate()
			var fields []string
			for _, is := range issues {
				fields = append(fields, is.Field)
			}
			require.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestSignupRequestNormalizes(t *testing.T) {
	req := SignupRequest{
		Name:        "  Asha ",
		Email:       " Asha@Example.COM ",
		CountryCode: " +91 ",
		PhoneNo:     " 9876543210 ",
		Password:    "secret",
	}
	require.Empty(t, req.Validate())
	require.Equal(t, "Asha", req.Name)
	require.Equal(t, "asha@example.com", req.Email)
	require.Equal(t, "+91", req.CountryCode)
	require.Equal(t, "9876543210", req.PhoneNo)
}

func TestEventRequestValidate(t *testing.T) {
	t.Run("valid RFC3339 time parses to UTC", func(t *testing.T) {
		req := EventRequest{
			Title:       "Concert",
			Description: "Live music",
			Location:    "Hall A",
			EventTime:   "2999-01-01T05:30:00+05:30",
		}
		got, issues := req.Validate()
		require.Empty(t, issues)
		require.Equal(t, time.Date(2999, 1, 1, 0, 0, 0, 0, time.UTC), got)
	})

	t.Run("unparseable time is an issue", func(t *testing.T) {
		req := EventRequest{
			Title:       "Concert",
			Description: "Live music",
			Location:    "Hall A",
			EventTime:   "next tuesday",
		}
		_, issues := req.Validate()
		require.Len(t, issues, 1)
		require.Equal(t, "eventTime", issues[0].Field)
	})

	t.Run("missing fields reported together", func(t *testing.T) {
		req := EventRequest{EventTime: "2999-01-01T00:00:00Z"}
		_, issues := req.Validate()
		require.Len(t, issues, 3)
	})
}

func TestEventID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    uint64
		wantErr bool
	}{
		{name: "valid", raw: "42", want: 42},
		{name: "padded", raw: " 42 ", want: 42},
		{name: "missing", raw: "", wantErr: true},
		{name: "zero", raw: "0", wantErr: true},
		{name: "not a number", raw: "abc", wantErr: true},
		{name: "negative", raw: "-1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, issues := EventID(tt.raw)
			if tt.wantErr {
				require.NotEmpty(t, issues)
				return
			}
			require.Empty(t, issues)
			require.Equal(t, tt.want, id)
		})
	}
}
