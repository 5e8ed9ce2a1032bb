package mailer

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"text/template"
	"time"

	"funil.app/crm/internal/model"
)

type Invite struct {
	To            string
	WorkspaceName string
	InviterName   string
	Role          model.Role
	AcceptURL     string
	ExpiresAt     time.Time
}

var roleLabels = map[model.Role]string{
	model.RoleAdmin:  "administrador",
	model.RoleMember: "membro",
}

const inviteHTML = `<p>Olá!</p>
<p>{{.Inviter}} convidou você para participar do workspace <strong>{{.Workspace}}</strong> no Funil como {{.Role}}.</p>
<p><a href="{{.URL}}">Aceitar convite</a></p>
<p>O convite expira em {{.Expires}}.</p>`

const inviteText = `Olá!

{{.Inviter}} convidou você para participar do workspace {{.Workspace}} no Funil como {{.Role}}.

Aceite o convite em: {{.URL}}

O convite expira em {{.Expires}}.
`

var (
	inviteHTMLTmpl = htmltemplate.Must(htmltemplate.New("invite_html").Parse(inviteHTML))
	inviteTextTmpl = template.Must(template.New("invite_text").Parse(inviteText))
)

type inviteView struct {
	Inviter   string
	Workspace string
	Role      string
	URL       string
	Expires   string
}

func inviteSubject(inv Invite) string {
	return fmt.Sprintf("Convite para o workspace %s", inv.WorkspaceName)
}

func renderInvite(inv Invite) (html, text string, err error) {
	inviter := inv.InviterName
	if inviter == "" {
		inviter = "Um colega"
	}
	role, ok := roleLabels[inv.Role]
	if !ok {
		role = string(inv.Role)
	}
	view := inviteView{
		Inviter:   inviter,
		Workspace: inv.WorkspaceName,
		Role:      role,
		URL:       inv.AcceptURL,
		Expires:   inv.ExpiresAt.Format("02/01/2006"),
	}

	var h, t bytes.Buffer
	if err := inviteHTMLTmpl.Execute(&h, view); err != nil {
		return "", "", fmt.Errorf("rendering invite html: %w", err)
	}
	if err := inviteTextTmpl.Execute(&t, view); err != nil {
		return "", "", fmt.Errorf("rendering invite text: %w", err)
	}
	return h.String(), t.String(), nil
}
