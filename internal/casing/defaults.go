package casing

// CoreWords is the built-in exception list with its canonical casing.
var CoreWords = []string{
	"WordPress", "PHP", "API", "HTTP", "HTTPS", "URL", "HTML", "CSS",
	"JavaScript", "JSON", "XML", "SQL", "MySQL",

	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",

	// May is a cautious word and handled separately
	"January", "February", "March", "April", "June", "July", "August",
	"September", "October", "November", "December",

	"Uncanny", "Uncanny Owl", "Uncanny Automator", "Uncanny Automator Pro",
	"Automator", "Automator Pro",

	"ActiveCampaign", "AWeber", "Bitly", "Brevo", "Campaign Monitor", "ClickUp",
	"Constant Contact", "ConvertKit", "Discord", "Drip", "Facebook",
	"Facebook Groups", "Facebook Pages", "Facebook Lead Ads", "GetResponse",
	"Google", "Google Calendar", "Google Contacts", "Google Sheets",
	"GoTo Training", "GoTo Webinar", "Help Scout", "HubSpot", "Instagram",
	"Keap", "LinkedIn", "LinkedIn Pages", "Mailchimp", "MailerLite", "Mautic",
	"Microsoft", "Microsoft Teams", "Notion", "Ontraport", "OpenAI", "Sendy",
	"Slack", "Stripe", "Telegram", "Threads", "Trello", "Twilio", "WhatsApp",
	"Twitter", "Zoho", "Zoho Campaigns", "Zoom", "Zoom Meetings", "Zoom Webinars",
}

// CautiousWords are never corrected automatically; a mismatch is only a warning.
var CautiousWords = []string{"REST", "I", "X", "May", "ID"}
