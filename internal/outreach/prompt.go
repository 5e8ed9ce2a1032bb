package outreach

import (
	"fmt"
	"strings"

	"funil.app/crm/internal/model"
	"funil.app/crm/internal/pipeline"
)

// PromptInput is everything a channel prompt is built from.
type PromptInput struct {
	Campaign     *model.Campaign
	Lead         *model.Lead
	CustomFields []model.CustomField
	Sender       Sender
	Variations   int
}

var channelGuidelines = map[model.Channel]string{
	model.ChannelWhatsApp: `Você escreve mensagens de prospecção para WhatsApp.
- Máximo de 600 caracteres por mensagem.
- Tom conversacional, frases curtas, no máximo um emoji.
- Termine com uma pergunta simples que convide a resposta.
- Não use assunto nem assinatura formal.`,
	model.ChannelEmail: `Você escreve emails de prospecção B2B.
- Comece a mensagem com a linha "Assunto: ..." seguida de uma linha em branco.
- Corpo entre 80 e 180 palavras, parágrafos curtos.
- Termine com uma chamada para ação clara.
- Assine usando os marcadores [Seu Nome], [Seu Cargo], [Sua Empresa] e [Seu Email], cada um em sua própria linha.`,
}

var toneGuidelines = map[model.VoiceTone]string{
	model.VoiceToneFormal:   "Use linguagem formal, trate o lead por \"o senhor\" ou \"a senhora\" e evite gírias.",
	model.VoiceToneInformal: "Use linguagem descontraída e próxima, tratando o lead por \"você\".",
	model.VoiceToneNeutral:  "Use linguagem profissional e cordial, tratando o lead por \"você\".",
}

// SystemPrompt returns the channel instructions. It never embeds lead data.
func SystemPrompt(channel model.Channel) string {
	return channelGuidelines[channel] + `

Regras gerais:
- Escreva em português do Brasil.
- Nunca invente fatos sobre o lead ou a empresa dele.
- Para dados do remetente use apenas os marcadores [Seu Nome], [Seu Cargo], [Sua Empresa], [Seu Email] e [Seu Telefone].`
}

// UserPrompt renders the campaign, lead and sender context for one channel.
func UserPrompt(channel model.Channel, in PromptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Gere %d variações de mensagem para o canal %s.\n", in.Variations, channelName(channel))
	fmt.Fprintf(&b, "Cada item deve ter type = %q.\n\n", channel)

	if c := in.Campaign; c != nil {
		b.WriteString("## Campanha\n")
		fmt.Fprintf(&b, "Nome: %s\n", c.Name)
		if strings.TrimSpace(c.Context) != "" {
			fmt.Fprintf(&b, "Contexto: %s\n", strings.TrimSpace(c.Context))
		}
		fmt.Fprintf(&b, "Tom de voz: %s\n", c.VoiceTone)
		if g, ok := toneGuidelines[c.VoiceTone]; ok {
			fmt.Fprintf(&b, "Formalidade: %s\n", g)
		}
		if strings.TrimSpace(c.AIInstructions) != "" {
			fmt.Fprintf(&b, "Instruções adicionais: %s\n", strings.TrimSpace(c.AIInstructions))
		}
		b.WriteString("\n")
	}

	if l := in.Lead; l != nil {
		b.WriteString("## Lead\n")
		writeAttr(&b, "Nome", l.Name)
		writeAttr(&b, "Cargo", l.Position)
		writeAttr(&b, "Empresa", l.Company)
		writeAttr(&b, "Email", l.Email)
		writeAttr(&b, "Telefone", l.Phone)
		writeAttr(&b, "Segmento", deref(l.Segment))
		writeAttr(&b, "Faturamento", deref(l.Revenue))
		writeAttr(&b, "LinkedIn", deref(l.LinkedIn))
		writeAttr(&b, "Observações", deref(l.Notes))
		for _, cf := range in.CustomFields {
			v, ok := l.CustomValues[pipeline.CustomFieldKey(cf.ID)]
			if !ok || v == nil {
				continue
			}
			writeAttr(&b, cf.Name, fmt.Sprint(v))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Remetente\n")
	writeAttr(&b, "Nome", in.Sender.Name)
	writeAttr(&b, "Cargo", in.Sender.Position)
	writeAttr(&b, "Empresa", in.Sender.Company)

	return b.String()
}

func writeAttr(b *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func channelName(c model.Channel) string {
	switch c {
	case model.ChannelWhatsApp:
		return "WhatsApp"
	case model.ChannelEmail:
		return "Email"
	}
	return string(c)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
