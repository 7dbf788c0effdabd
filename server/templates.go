package server

import "html/template"

var loginTmpl = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head><title>Sign in</title></head>
<body>
<h1>Sign in</h1>
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<form method="POST" action="/login">
  <label>Email <input type="text" name="username" value="{{.Username}}"></label>
  <label>Password <input type="password" name="password"></label>
  <button type="submit">Sign in</button>
</form>
</body>
</html>
`))

var consentTmpl = template.Must(template.New("consent").Parse(`<!DOCTYPE html>
<html>
<head><title>Authorize {{.ClientID}}</title></head>
<body>
<h1>Authorize access</h1>
<p><b>{{.ClientID}}</b> is requesting access to your account.</p>
<form method="POST" action="/authorize">
  <input type="hidden" name="transaction_id" value="{{.TransactionID}}">
  <button type="submit">Allow</button>
  <button type="submit" name="cancel" value="Deny">Deny</button>
</form>
</body>
</html>
`))

var loggedInTmpl = template.Must(template.New("loggedin").Parse(`<!DOCTYPE html>
<html>
<head><title>Signed in</title></head>
<body><p>You are signed in.</p></body>
</html>
`))

type loginPageData struct {
	Error    string
	Username string
}

type consentPageData struct {
	ClientID      string
	TransactionID string
}
