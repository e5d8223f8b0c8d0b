package letter

import (
	"strings"
	"testing"
)

const sampleBody = "I was excited to see your opening for a backend engineer. Over the past five years I have built and operated Go services in production, including a payments pipeline handling millions of requests per day.\n\nI would love to bring that experience to your team."

func TestCleanStripsSalutationAndSignature(t *testing.T) {
	t.Parallel()

	raw := "Dear Hiring Manager,\n\n" + sampleBody + "\n\nSincerely,\nAlice Example"
	got := Clean(raw)

	if strings.Contains(got, "Dear") {
		t.Fatalf("salutation survived cleanup: %q", got)
	}
	if strings.Contains(got, "Sincerely") || strings.Contains(got, "Alice Example") {
		t.Fatalf("signature survived cleanup: %q", got)
	}
	if !strings.HasPrefix(got, "I was excited") {
		t.Fatalf("expected body to start at first sentence, got %q", got)
	}
}

func TestCleanStripsCodeFences(t *testing.T) {
	t.Parallel()

	raw := "```\nDear Team,\n\n" + sampleBody + "\n\nBest regards,\nBob\n```"
	got := Clean(raw)

	if strings.Contains(got, "```") {
		t.Fatalf("fence survived cleanup: %q", got)
	}
	if !strings.HasPrefix(got, "I was excited") {
		t.Fatalf("unexpected start: %q", got)
	}
}

func TestCleanDropsLeakedJobDescriptionBeforeSalutation(t *testing.T) {
	t.Parallel()

	raw := "Job description:\nSenior Backend Engineer. Python, Docker, Kubernetes required.\n\nDear Hiring Manager,\n\n" + sampleBody + "\n\nSincerely,\nAlice"
	got := Clean(raw)

	if strings.Contains(got, "Kubernetes required") {
		t.Fatalf("leaked job description survived: %q", got)
	}
	if !strings.HasPrefix(got, "I was excited") {
		t.Fatalf("expected body to start directly after salutation, got %q", got)
	}
}

func TestCleanRemovesLeakedInstructions(t *testing.T) {
	t.Parallel()

	raw := "Dear Hiring Manager,\n\n" + sampleBody + "\n\nWrite a professional cover letter for the job below, based on the candidate's resume."
	got := Clean(raw)

	if strings.Contains(strings.ToLower(got), "write a professional cover letter") {
		t.Fatalf("leaked instruction survived: %q", got)
	}
	if !strings.HasPrefix(got, "I was excited") {
		t.Fatalf("unexpected start: %q", got)
	}
}

func TestCleanTruncatesDuplicatedLetter(t *testing.T) {
	t.Parallel()

	single := "Dear Hiring Manager,\n\n" + sampleBody + "\n\nSincerely,\nAlice"
	raw := single + "\n\n" + single
	got := Clean(raw)

	if count := strings.Count(got, "I was excited"); count != 1 {
		t.Fatalf("expected single body, found %d copies: %q", count, got)
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Dear Hiring Manager,\n\n" + sampleBody + "\n\nSincerely,\nAlice",
		sampleBody,
		"too short",
		"```\nDear Team,\n\n" + sampleBody + "\n```",
	}

	for _, raw := range inputs {
		once := Clean(raw)
		twice := Clean(once)
		if once != twice {
			t.Fatalf("cleanup not idempotent:\nonce:  %q\ntwice: %q", once, twice)
		}
	}
}

func TestCleanEnforcesMinimumLength(t *testing.T) {
	t.Parallel()

	tests := []string{
		"",
		"   ",
		"Dear Hiring Manager,\n\nThanks.\n\nSincerely,\nBob",
		"Short reply.",
	}

	for _, raw := range tests {
		got := Clean(raw)
		if len(got) < MinLength {
			t.Fatalf("cleaned output below minimum length: %q", got)
		}
		if got != GenericLetter {
			t.Fatalf("expected generic template for %q, got %q", raw, got)
		}
	}
}

func TestGenericLetterSurvivesCleanUnchanged(t *testing.T) {
	t.Parallel()

	if Clean(GenericLetter) != GenericLetter {
		t.Fatal("generic template must be a fixed point of Clean")
	}
}
