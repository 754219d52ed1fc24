package core

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Score increments per matched indicator. The per-rule spam cutoffs are
// fixed alongside them; only the aggregate threshold is configurable.
const (
	scoreKeywordMatch    = 15
	scoreURLInMessage    = 25
	scoreSpecialChars    = 20
	scoreExcessiveCaps   = 15
	scoreRepeatedChars   = 10
	scoreHoneypotFilled  = 100
	scoreMissingAgent    = 10
	scoreSuspiciousAgent = 90

	scoreTestEmail   = 40
	scoreTestName    = 30
	scoreTestPhone   = 35
	scoreTestAddress = 25

	contentSpamCutoff  = 50
	testDataSpamCutoff = 40
)

// spamKeywords are commerce/pharma/financial-scam terms matched as
// case-insensitive substrings of the message.
var spamKeywords = []string{
	"buy", "sale", "offer", "discount", "promo", "click here",
	"visit", "website", "seo", "marketing", "viagra", "cialis",
	"pharmacy", "casino", "poker", "loan", "crypto", "bitcoin",
	"investment", "earn money", "work from home", "make money",
	"free money", "win prize", "congratulations", "winner",
}

// testPatterns catch placeholder/test values in identity fields.
var (
	testEmailPattern   = regexp.MustCompile(`(?i)test@|example@|fake@|sample@|temp@|mailinator|guerrilla`)
	testNamePattern    = regexp.MustCompile(`(?i)test|asdf|qwerty|fake|dummy|lorem|ipsum`)
	testPhonePattern   = regexp.MustCompile(`\(123\)|^555|0000|1234567890`)
	testAddressPattern = regexp.MustCompile(`(?i)test|example|fake|asdf|lorem|ipsum`)
)

// suspiciousAgents are automation/tooling signatures matched as
// case-insensitive substrings of the User-Agent header.
var suspiciousAgents = []string{
	"curl", "wget", "python-requests", "go-http-client", "scrapy",
	"bot", "spider", "crawler", "selenium", "phantomjs", "headless",
}

var (
	urlPattern         = regexp.MustCompile(`(?i)https?://|www\.`)
	specialCharPattern = regexp.MustCompile(`[^a-zA-Z0-9\s.,!?\-]`)
	upperCasePattern   = regexp.MustCompile(`[A-Z]`)
)

// ScoreRule is one named, pure scoring check. Rules never observe each
// other's results; the orchestrator reduces them by summation.
type ScoreRule struct {
	Name  string
	Check func(in *SubmissionInput) SpamSignal
}

// ScoringRules returns the fixed, ordered rule set applied to every
// submission.
func ScoringRules() []ScoreRule {
	return []ScoreRule{
		{Name: "honeypot", Check: func(in *SubmissionInput) SpamSignal { return CheckHoneypot(in.Honeypot) }},
		{Name: "content", Check: func(in *SubmissionInput) SpamSignal { return DetectSpamContent(in.Message) }},
		{Name: "test_data", Check: func(in *SubmissionInput) SpamSignal {
			return DetectTestData(in.Email, in.FirstName, in.LastName, in.Phone, in.Address)
		}},
		{Name: "user_agent", Check: func(in *SubmissionInput) SpamSignal { return CheckUserAgent(in.UserAgent) }},
	}
}

// CheckHoneypot flags any non-empty honeypot value. The field is hidden
// from humans, so a filled value is unambiguous bot behavior.
func CheckHoneypot(value string) SpamSignal {
	if value != "" {
		return SpamSignal{
			IsSpam: true,
			Reason: "Honeypot field filled",
			Score:  scoreHoneypotFilled,
		}
	}
	return SpamSignal{}
}

// DetectSpamContent scores the free-text message against keyword and
// shape heuristics. The message is NFKC-normalized first so full-width
// and compatibility characters cannot dodge the keyword list.
func DetectSpamContent(message string) SpamSignal {
	if strings.TrimSpace(message) == "" {
		return SpamSignal{}
	}

	message = norm.NFKC.String(message)
	messageLower := strings.ToLower(message)

	score := 0
	var indicators []string

	for _, keyword := range spamKeywords {
		if strings.Contains(messageLower, keyword) {
			indicators = append(indicators, keyword)
			score += scoreKeywordMatch
		}
	}

	if urlPattern.MatchString(message) {
		score += scoreURLInMessage
		indicators = append(indicators, "URL")
	}

	runeCount := len([]rune(message))
	specialChars := len(specialCharPattern.FindAllString(message, -1))
	if float64(specialChars)/float64(runeCount) > 0.3 {
		score += scoreSpecialChars
		indicators = append(indicators, "excessive special chars")
	}

	upperCase := len(upperCasePattern.FindAllString(message, -1))
	if float64(upperCase)/float64(runeCount) > 0.5 && runeCount > 20 {
		score += scoreExcessiveCaps
		indicators = append(indicators, "excessive caps")
	}

	if hasRepeatedRun(message, 5) {
		score += scoreRepeatedChars
		indicators = append(indicators, "repeated chars")
	}

	var reason string
	if len(indicators) > 0 {
		reason = fmt.Sprintf("Spam indicators: %s", strings.Join(indicators, ", "))
	}

	return SpamSignal{
		IsSpam: score >= contentSpamCutoff,
		Reason: reason,
		Score:  score,
	}
}

// hasRepeatedRun reports whether any rune repeats at least n times
// consecutively.
func hasRepeatedRun(s string, n int) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= n {
			return true
		}
	}
	return false
}

// DetectTestData matches optional identity fields against field-specific
// placeholder denylists. Matches accumulate weighted scores.
func DetectTestData(email, firstName, lastName, phone, address string) SpamSignal {
	score := 0
	var reasons []string

	if email != "" && testEmailPattern.MatchString(email) {
		score += scoreTestEmail
		reasons = append(reasons, "test email")
	}
	if firstName != "" && testNamePattern.MatchString(firstName) {
		score += scoreTestName
		reasons = append(reasons, "test first name")
	}
	if lastName != "" && testNamePattern.MatchString(lastName) {
		score += scoreTestName
		reasons = append(reasons, "test last name")
	}
	if phone != "" && testPhonePattern.MatchString(phone) {
		score += scoreTestPhone
		reasons = append(reasons, "test phone")
	}
	if address != "" && testAddressPattern.MatchString(address) {
		score += scoreTestAddress
		reasons = append(reasons, "test address")
	}

	var reason string
	if len(reasons) > 0 {
		reason = fmt.Sprintf("Test data detected: %s", strings.Join(reasons, ", "))
	}

	return SpamSignal{
		IsSpam: score >= testDataSpamCutoff,
		Reason: reason,
		Score:  score,
	}
}

// CheckUserAgent flags automation tooling by User-Agent signature. A
// missing header is mildly suspicious but never blocking on its own.
func CheckUserAgent(userAgent string) SpamSignal {
	if userAgent == "" {
		return SpamSignal{
			Reason: "No User-Agent provided",
			Score:  scoreMissingAgent,
		}
	}

	agentLower := strings.ToLower(userAgent)
	for _, agent := range suspiciousAgents {
		if strings.Contains(agentLower, agent) {
			return SpamSignal{
				IsSpam: true,
				Reason: fmt.Sprintf("Suspicious User-Agent: %s", agent),
				Score:  scoreSuspiciousAgent,
			}
		}
	}

	return SpamSignal{}
}
