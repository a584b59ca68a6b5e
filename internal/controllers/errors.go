package controllers

// Сообщения из тела ответа. Бизнес-ошибки уходят с HTTP 200 и полем errMsg,
// клиент проверяет тело, а не код ответа.
const (
	msgInputURL      = "Input URL"
	msgInvalidURL    = "Invalid URL"
	msgQuotaExceeded = "You can create 0 more links"
	msgLinkShortened = "Link shortened successfully"
	msgLinkNotFound  = "Link not found"
	msgServerError   = "Server error"
	msgMissingFields = "Please enter all fields"
	msgInvalidEmail  = "Invalid email pattern"
	msgWeakPassword  = "Password should contain at least 6 characters. An uppercase letter, lowercase letter, number, and a special character"
	msgEmailTaken    = "User with this email already exists"
	msgSignupSuccess = "User Registered Successfully, Please Wait."
	msgMissingSignin = "Please enter both email and password"
	msgNoAccount     = "Account does not exist"
	msgWrongPassword = "Incorrect Password!"
	msgSigninSuccess = "Login successful, please wait"
)
