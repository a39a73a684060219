package main

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/postmarkgo/postmark/internal/hujsonx"
	"github.com/postmarkgo/postmark/internal/log/handlers/cli"
	"github.com/postmarkgo/postmark/pkg/postmark/api"
	"github.com/postmarkgo/postmark/pkg/postmark/api/email"
	"github.com/rogpeppe/go-internal/lockedfile"
	"github.com/spf13/cobra"
)

// errMissingBody indicates that neither --text nor --html were given.
var errMissingBody = errors.New("either --text or --html is required")

// bodyFromFlags returns the body given the --html and --text values.
func bodyFromFlags(html, text string) (api.Body, error) {
	switch {
	case html != "" && text != "":
		return api.HTMLAndTextBody(html, text), nil
	case html != "":
		return api.HTMLBody(html), nil
	case text != "":
		return api.TextBody(text), nil
	default:
		return api.Body{}, errMissingBody
	}
}

// logSent prints a summary of a successful send.
func logSent(resp email.SendEmailResponse) {
	log.WithFields(log.Fields{
		"type":      cli.TypeTable,
		"MessageID": resp.MessageID,
		"To":        resp.To,
	}).Info("sent")
}

func newSendCommand(opts *options) *cobra.Command {
	var (
		html       string
		text       string
		trackOpens bool
	)
	req := &email.SendEmailRequest{}
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a single email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := bodyFromFlags(html, text)
			if err != nil {
				return err
			}
			req.Body = body
			if cmd.Flags().Changed("track-opens") {
				req.TrackOpens = &trackOpens
			}
			if err := req.Validate(); err != nil {
				return err
			}
			resp, err := call(cmd.Context(), opts, req.Execute)
			if err != nil {
				return err
			}
			logSent(resp)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&req.From, "from", "", "Sender address")
	flags.StringVar(&req.To, "to", "", "Comma separated recipient addresses")
	flags.StringVar(&req.Cc, "cc", "", "Comma separated cc recipient addresses")
	flags.StringVar(&req.Bcc, "bcc", "", "Comma separated bcc recipient addresses")
	flags.StringVar(&req.Subject, "subject", "", "Message subject")
	flags.StringVar(&req.Tag, "tag", "", "Tag used to categorize the message")
	flags.StringVar(&req.ReplyTo, "reply-to", "", "Reply-To address")
	flags.StringVar(&req.MessageStream, "stream", "", "Message stream (default outbound)")
	flags.StringVar(&html, "html", "", "HTML body")
	flags.StringVar(&text, "text", "", "Text body")
	flags.BoolVar(&trackOpens, "track-opens", false, "Whether to track opens")
	return cmd
}

// readModel reads a template model from a JSON file that may
// contain comments and trailing commas.
func readModel(path string) (email.TemplateModel, error) {
	model := email.TemplateModel{}
	if path == "" {
		return model, nil
	}
	data, err := lockedfile.Read(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading the template model")
	}
	if err := hujsonx.Unmarshal(data, &model); err != nil {
		return nil, errors.Wrap(err, "parsing the template model")
	}
	return model, nil
}

func newSendTemplateCommand(opts *options) *cobra.Command {
	var (
		from      string
		modelPath string
		stream    string
		template  string
		to        string
	)
	cmd := &cobra.Command{
		Use:   "send-template",
		Short: "Send a single email rendering a template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if template == "" {
				return errors.New("--template is required")
			}
			model, err := readModel(modelPath)
			if err != nil {
				return err
			}
			req := email.NewSendEmailWithTemplateRequest(from, to, api.ParseRef(template), model)
			req.MessageStream = stream
			resp, err := call(cmd.Context(), opts, req.Execute)
			if err != nil {
				return err
			}
			logSent(resp)
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&from, "from", "", "Sender address")
	flags.StringVar(&to, "to", "", "Comma separated recipient addresses")
	flags.StringVar(&template, "template", "", "Template ID or alias")
	flags.StringVar(&modelPath, "model", "", "JSON file containing the template model")
	flags.StringVar(&stream, "stream", "", "Message stream (default outbound)")
	return cmd
}
