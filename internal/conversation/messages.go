package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/talentscout/screener/internal/candidate"
)

const (
	recruitingContact = "recruitment@talentscout.example.com"
	notProvided       = "Not provided"
	timestampLayout   = "2006-01-02 15:04:05"
)

const greetingMessage = `Hello! I'm the TalentScout Hiring Assistant.

I'm here to help with your initial screening process for tech positions.
I'll ask you a few questions about your background and technical skills.

Let's start with your name. What is your full name?`

const (
	nameRetryMessage        = "I didn't quite catch your name. Could you please provide your full name?"
	experienceRequestMsg    = "Great! Now, how many years of experience do you have in the tech industry?"
	positionRequestMsg      = "Thank you! What position(s) are you interested in applying for at our company?"
	locationRequestMsg      = "Great! Could you please tell me your current location?"
	emptyInputMessage       = "I didn't catch that. Could you say it again?"
	techStackRequestMessage = `Thank you for that information! Now, I'd like to know about your technical skills.

Please list the programming languages, frameworks, databases, and tools that you are proficient in.
For example: Python, React, AWS, SQL, etc.`
)

func contactRequestMessage(name string) string {
	return fmt.Sprintf("Thanks, %s! Could you please provide your email address and phone number so we can contact you?", name)
}

func contactRetryMessage(record *candidate.Record) string {
	var missing []string
	if record.Email == "" {
		missing = append(missing, "email address")
	}
	if record.Phone == "" {
		missing = append(missing, "phone number")
	}
	return fmt.Sprintf("I still need your %s. Could you provide that information?", strings.Join(missing, " and "))
}

func closingMessage(record *candidate.Record) string {
	name := candidate.FieldOrDefault(record.Name, "candidate")
	email := candidate.FieldOrDefault(record.Email, "your email")

	techStack := record.TechStackString()
	if techStack == "" {
		techStack = notProvided
	}

	return fmt.Sprintf(`Thank you for taking the time to chat with me, %s!

I've collected your information for the initial screening process. Here's what I have:
- Name: %s
- Email: %s
- Phone: %s
- Experience: %s
- Position interest: %s
- Location: %s
- Tech stack: %s
- Application time: %s

A TalentScout recruiter will review your details and get back to you soon via %s.

If you have any questions in the meantime, feel free to reach out to our recruitment team at %s

Have a great day!`,
		name,
		candidate.FieldOrDefault(record.Name, notProvided),
		candidate.FieldOrDefault(record.Email, notProvided),
		candidate.FieldOrDefault(record.Phone, notProvided),
		candidate.FieldOrDefault(record.Experience, notProvided),
		candidate.FieldOrDefault(record.Position, notProvided),
		candidate.FieldOrDefault(record.Location, notProvided),
		techStack,
		now().Format(timestampLayout),
		email,
		recruitingContact,
	)
}

// now is swapped out in tests that assert on the closing summary.
var now = time.Now
