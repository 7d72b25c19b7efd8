package extractor

import "testing"

func TestExtractNameAndEmail(t *testing.T) {
	fields := Extract("my name is John Doe, email john@doe.com")

	if fields.FirstName != "John" {
		t.Errorf("FirstName = %q, want John", fields.FirstName)
	}
	if fields.LastName != "Doe" {
		t.Errorf("LastName = %q, want Doe", fields.LastName)
	}
	if fields.Email != "john@doe.com" {
		t.Errorf("Email = %q, want john@doe.com", fields.Email)
	}
}

func TestExtractNothing(t *testing.T) {
	fields := Extract("no contact info here")

	if !fields.Empty() {
		t.Errorf("expected empty fields, got %+v", fields)
	}
}

func TestExtractEmail(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"reach me at jane.roe+test@example.co.uk thanks", "jane.roe+test@example.co.uk"},
		{"email: bob@acme.io", "bob@acme.io"},
		{"no at sign here", ""},
	}

	for _, tc := range tests {
		if got := Extract(tc.message).Email; got != tc.want {
			t.Errorf("Extract(%q).Email = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestExtractPhoneKeepsRawWhenNotValid(t *testing.T) {
	// 555-123-xxxx is not a valid NANP exchange, so normalization
	// falls back to the raw match.
	fields := Extract("call me at 555-123-4567 today")

	if fields.Phone != "555-123-4567" {
		t.Errorf("Phone = %q, want 555-123-4567", fields.Phone)
	}
}

func TestExtractName(t *testing.T) {
	tests := []struct {
		message   string
		wantFirst string
		wantLast  string
	}{
		{"I am Alice", "Alice", ""},
		{"hello, my name is Jane Roe and I need help", "Jane", "Roe"},
		{"name: Bob Smith", "Bob", "Smith"},
		{"i am shouting lowercase", "", ""},
	}

	for _, tc := range tests {
		fields := Extract(tc.message)
		if fields.FirstName != tc.wantFirst || fields.LastName != tc.wantLast {
			t.Errorf("Extract(%q) name = %q %q, want %q %q",
				tc.message, fields.FirstName, fields.LastName, tc.wantFirst, tc.wantLast)
		}
	}
}

func TestExtractCompany(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"I work at Acme.", "Acme"},
		{"working for Globex as an engineer", "Globex"},
		{"company: TechCorp", "TechCorp"},
		{"just chatting", ""},
	}

	for _, tc := range tests {
		if got := Extract(tc.message).Company; got != tc.want {
			t.Errorf("Extract(%q).Company = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestFieldsLead(t *testing.T) {
	fields := Extract("my name is John Doe, email john@doe.com")
	lead := fields.Lead("chatbot", "original message")

	if lead.Email != "john@doe.com" || lead.FirstName != "John" {
		t.Errorf("lead = %+v, want extracted contact carried over", lead)
	}
	if lead.Source != "chatbot" {
		t.Errorf("Source = %q, want chatbot", lead.Source)
	}
}
