package session

const messageUnknownCaller = "Sorry, I can't find your details in our system."
