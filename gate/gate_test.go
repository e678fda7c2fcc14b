package gate

import (
	"context"
	"errors"
	"testing"
)

// stubSource returns a fixed balance or error.
type stubSource struct {
	balance uint64
	err     error
}

func (s stubSource) Balance(context.Context, string) (uint64, error) {
	return s.balance, s.err
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		name      string
		src       BalanceSource
		cfg       Config
		expErr    bool
		expFields []string
	}{
		{
			name: "Valid config",
			src:  stubSource{},
			cfg:  Config{Token: "CHESH", MinBalance: 100},
		},
		{
			name:   "Nil source",
			src:    nil,
			cfg:    Config{Token: "CHESH", MinBalance: 100},
			expErr: true,
		},
		{
			name:      "Missing token",
			src:       stubSource{},
			cfg:       Config{MinBalance: 100},
			expErr:    true,
			expFields: []string{"token"},
		},
		{
			name:      "Zero minimum balance",
			src:       stubSource{},
			cfg:       Config{Token: "CHESH"},
			expErr:    true,
			expFields: []string{"min_balance"},
		},
		{
			name:      "Both fields invalid",
			src:       stubSource{},
			cfg:       Config{},
			expErr:    true,
			expFields: []string{"token", "min_balance"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.src, tc.cfg)

			if !tc.expErr {
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}
				if g == nil {
					t.Fatal("exp non-nil Gate")
				}
				return
			}

			if err == nil {
				t.Fatal("exp error, got nil")
			}

			if len(tc.expFields) == 0 {
				return
			}

			var fields FieldErrors
			if !errors.As(err, &fields) {
				t.Fatalf("exp FieldErrors, got: %v", err)
			}
			if len(fields) != len(tc.expFields) {
				t.Fatalf("exp %d field errors, got %d: %v", len(tc.expFields), len(fields), fields)
			}
			for i, f := range fields {
				if f.Field != tc.expFields[i] {
					t.Errorf("exp field %q, got %q", tc.expFields[i], f.Field)
				}
			}
		})
	}
}

func TestNew_ValidationMessages(t *testing.T) {
	_, err := New(stubSource{}, Config{})

	var fields FieldErrors
	if !errors.As(err, &fields) {
		t.Fatalf("exp FieldErrors, got: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("exp 2 field errors, got %d: %v", len(fields), fields)
	}

	if fields[0].Err != "This field is required" {
		t.Errorf("exp required message for token, got %q", fields[0].Err)
	}
	if fields[1].Err != "A gate needs a minimum balance greater than 0" {
		t.Errorf("exp threshold message for min_balance, got %q", fields[1].Err)
	}
}

func TestGate_Accessors(t *testing.T) {
	g, err := New(stubSource{}, Config{Token: "CHESH", MinBalance: 250})
	if err != nil {
		t.Fatal(err)
	}

	if g.Token() != "CHESH" {
		t.Errorf("exp token CHESH, got %q", g.Token())
	}
	if g.MinBalance() != 250 {
		t.Errorf("exp min balance 250, got %d", g.MinBalance())
	}
}

func TestCheck(t *testing.T) {
	sourceDown := errors.New("source down")

	testCases := []struct {
		name       string
		src        BalanceSource
		account    string
		expAllowed bool
		expErr     error
	}{
		{
			name:       "Balance above minimum",
			src:        stubSource{balance: 150},
			account:    "acct",
			expAllowed: true,
		},
		{
			name:       "Balance at minimum",
			src:        stubSource{balance: 100},
			account:    "acct",
			expAllowed: true,
		},
		{
			name:    "Balance below minimum",
			src:     stubSource{balance: 99},
			account: "acct",
		},
		{
			name:    "Zero balance",
			src:     stubSource{},
			account: "acct",
		},
		{
			name:    "Source failure propagates",
			src:     stubSource{err: sourceDown},
			account: "acct",
			expErr:  sourceDown,
		},
		{
			name:   "Empty account",
			src:    stubSource{balance: 150},
			expErr: ErrEmptyAccount,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := New(tc.src, Config{Token: "CHESH", MinBalance: 100})
			if err != nil {
				t.Fatal(err)
			}

			d, err := g.Check(context.Background(), tc.account)

			if tc.expErr != nil {
				if !errors.Is(err, tc.expErr) {
					t.Errorf("exp err %v; got: %v", tc.expErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("exp nil err, got: %v", err)
			}
			if d.Allowed != tc.expAllowed {
				t.Errorf("exp allowed=%t, got %t (balance %d)", tc.expAllowed, d.Allowed, d.Balance)
			}
			if d.Account != tc.account {
				t.Errorf("exp account %q, got %q", tc.account, d.Account)
			}
			if d.ID == "" {
				t.Error("exp non-empty decision id")
			}
			if d.CheckedAt.IsZero() {
				t.Error("exp CheckedAt to be set")
			}
		})
	}
}
