package analytics

// FAQ is one frequently asked question with its canned answer.
type FAQ struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// faqs is static for now. Move to the database if the list ever needs
// editing without a deploy.
var faqs = []FAQ{
	{
		Question: "How does the chat system work?",
		Answer:   "Our chat system uses AI to understand and respond to your questions. It leverages large language models to provide helpful, accurate information on a wide range of topics.",
	},
	{
		Question: "Is my conversation data secure?",
		Answer:   "Yes, all conversations are encrypted and stored securely. We do not share your data with third parties, and you can request deletion of your data at any time.",
	},
	{
		Question: "Can I use the chatbot without registering?",
		Answer:   "Yes, you can use the chatbot as a guest by providing just an email address. However, registering gives you access to additional features like saving chat history and customizing preferences.",
	},
	{
		Question: "How are product recommendations chosen?",
		Answer:   "When you ask for recommendations, we look up your approximate location from your IP address and suggest nearby options sorted by distance.",
	},
	{
		Question: "How can I report an issue with the chatbot?",
		Answer:   "You can report issues through the feedback form or by sending an email to support with details about the problem you encountered.",
	},
}
