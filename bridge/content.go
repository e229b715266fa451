package bridge

import (
	"bytes"
	"html/template"
	"net/url"
)

const (
	defaultWidgetURL = "https://widget.truora.com/widget.js"
	defaultDIBaseURL = "https://identity.truora.com"
	defaultElementID = "truora-sdk"
)

// widgetTemplate is the document rendered into the host for validation
// mode. All fields are interpolated through html/template, so quotes and
// markup in the parameters end up escaped in both the HTML and the script
// contexts. The expiry handler posts its own prefix; the upstream widget
// template reused onComplete: for both events, which made expiry
// indistinguishable on the wire.
var widgetTemplate = template.Must(template.New("widget").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<div id="{{.ElementID}}"></div>
<script src="{{.WidgetURL}}"></script>
<script>
  var validation = TruoraValidations.init({
    elementId: {{.ElementID}},
    validationId: {{.ValidationID}},
    documentNumber: {{.DocumentNumber}},
    language: {{.Language}},
  });
  validation.on("validation.succeeded", function (result) {
    window[{{.Channel}}].postMessage("onComplete:" + JSON.stringify(result));
  });
  validation.on("validation.expired", function (result) {
    window[{{.Channel}}].postMessage("onExpired:" + JSON.stringify(result));
  });
</script>
</body>
</html>
`))

type widgetData struct {
	ElementID      string
	WidgetURL      string
	Channel        string
	ValidationID   string
	DocumentNumber string
	Language       string
}

func renderWidget(data widgetData) (string, error) {
	var buf bytes.Buffer
	if err := widgetTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// diTargetURL appends the session token to the identity frontend URL as a
// query parameter, URL-encoded.
func diTargetURL(base string, token string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
