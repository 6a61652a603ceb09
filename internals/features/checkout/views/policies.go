package views

type PolicySection struct {
	Heading string
	Content []string
}

type PolicyDoc struct {
	Anchor      string
	Title       string
	LastUpdated string
	Sections    []PolicySection
}

type PoliciesPage struct {
	Event    EventInfo
	Policies []PolicyDoc
}

// Policies: syarat & ketentuan, privasi, refund (urutan = urutan tampil).
var Policies = []PolicyDoc{
	{
		Anchor:      "terms",
		Title:       "Terms and Conditions",
		LastUpdated: "2024-01-01",
		Sections: []PolicySection{
			{"Event Registration", []string{
				"By registering for this event, you acknowledge that you have read, understood, and agree to these terms and conditions.",
				"Registration is subject to availability and may be limited based on event capacity.",
				"The event organizers reserve the right to modify or cancel the event due to unforeseen circumstances.",
			}},
			{"Participant Requirements", []string{
				"All participants must meet the age and skill level requirements specified for their grade.",
				"Participants must provide accurate and complete information during registration.",
				"Parental consent is required for participants under the age of 18.",
			}},
			{"Liability and Safety", []string{
				"Participants acknowledge that they participate in the event at their own risk.",
				"The event organizers are not liable for any injuries, accidents, or damages that may occur during the event.",
				"Participants must follow all safety guidelines and instructions provided by event staff.",
			}},
			{"Code of Conduct", []string{
				"All participants must behave respectfully and follow event rules and regulations.",
				"Any disruptive or inappropriate behavior may result in removal from the event without refund.",
				"Participants are expected to maintain a positive and inclusive environment for all attendees.",
			}},
		},
	},
	{
		Anchor:      "privacy",
		Title:       "Privacy Policy",
		LastUpdated: "2024-01-01",
		Sections: []PolicySection{
			{"Information We Collect", []string{
				"We collect the information you provide during registration: participant name, coach name, parent contact details, grade, gender and address.",
				"This information is necessary for event management and participant communication.",
			}},
			{"How We Use Your Information", []string{
				"Your information is used to process your event registration and payment.",
				"We may use your contact information to send important event updates.",
				"We will not share your personal information with third parties without your explicit consent.",
			}},
			{"Data Retention", []string{
				"Event-related information is typically retained for one year after the event.",
				"You may request deletion of your personal information at any time.",
			}},
		},
	},
	{
		Anchor:      "refund",
		Title:       "Refund & Cancellation",
		LastUpdated: "2024-01-01",
		Sections: []PolicySection{
			{"Cancellation", []string{
				"Upon completing a transaction, you are entering into a binding agreement to purchase the registration.",
				"We retain the discretion in approving any cancellation requests and may ask for additional details before approving them.",
			}},
			{"Refunds", []string{
				"Any request for refund must be submitted within three days from the date of the transaction, with your payment ID and a clear reason.",
				"In case of event cancellation, participants will be notified and refunds will be issued.",
			}},
		},
	},
}
