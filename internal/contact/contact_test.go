package contact

import (
	"context"
	"strings"
	"testing"
	"testing/synctest"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	f := NewForm()
	f.Name = "Priya"
	f.Company = "Acme"
	f.Email = "priya@acme.io"
	return f
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Form)
		fields []string
	}{
		{"valid", func(*Form) {}, nil},
		{"short company", func(f *Form) { f.Company = "AB" }, []string{"company"}},
		{"short name", func(f *Form) { f.Name = "P" }, []string{"name"}},
		{"email without dot", func(f *Form) { f.Email = "priya@acme" }, []string{"email"}},
		{"email with space", func(f *Form) { f.Email = "pri ya@acme.io" }, []string{"email"}},
		{"long message", func(f *Form) { f.Message = strings.Repeat("x", MaxMessageLen+1) }, []string{"message"}},
		{"bad offer", func(f *Form) { f.OfferType = "Internship" }, []string{"offerType"}},
		{"bad location", func(f *Form) { f.Location = "Moon" }, []string{"location"}},
		{"empty", func(f *Form) { *f = Form{} }, []string{"company", "email", "name"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)
			err := f.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			fe, ok := AsFieldErrors(err)
			require.True(t, ok)
			var got []string
			for k := range fe {
				got = append(got, k)
			}
			assert.ElementsMatch(t, tt.fields, got)
		})
	}
}

func TestFieldErrorsMessage(t *testing.T) {
	err := Form{}.Validate()
	assert.Equal(t, "invalid contact form: company: Min 3 chars required; email: Invalid email address; name: Min 2 chars required", err.Error())
}

func TestSimulatedSubmitter(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := NewSimulatedSubmitter(zerolog.Nop())
		start := time.Now()
		require.NoError(t, s.Submit(context.Background(), validForm()))
		assert.Equal(t, SubmitDelay, time.Since(start))
	})
}

func TestSimulatedSubmitterCancelled(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s := NewSimulatedSubmitter(zerolog.Nop())
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()
		err := s.Submit(ctx, validForm())
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestSimulatedSubmitterRejectsInvalid(t *testing.T) {
	s := NewSimulatedSubmitter(zerolog.Nop())
	err := s.Submit(context.Background(), Form{})
	_, ok := AsFieldErrors(err)
	assert.True(t, ok)
}

func TestSummary(t *testing.T) {
	assert.Equal(t, "Priya at Acme: Full-time, Remote", validForm().Summary())
}
