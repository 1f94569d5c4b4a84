// Package services – response formatting
//
// This file renders the three fixed WhatsApp reply templates (product found,
// product not found, technical error) plus the currency helpers. Everything
// here is pure string work: no I/O, no randomness, deterministic output for
// a given input.
package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/assistec/go-whats-backend/internal/domain"
)

// FormatPrice renders a price in Brazilian convention: two decimals with a
// comma separator, e.g. 189.9 → "189,90".
func FormatPrice(v float64) string {
	return strings.Replace(strconv.FormatFloat(v, 'f', 2, 64), ".", ",", 1)
}

// ParsePrice is the inverse of FormatPrice, accepting "189,90" (and a
// tolerated "189.90"). Used by the admin surface when prices arrive as
// locale-formatted strings.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	s = strings.Replace(s, ",", ".", 1)
	return strconv.ParseFloat(s, 64)
}

// FormatProductResponse renders the "product available" template for the
// highest-stock match. The description line is omitted when the product has
// no description.
func FormatProductResponse(p domain.Product) string {
	var b strings.Builder
	b.WriteString("🛠️ *Produto disponível!*\n\n")
	fmt.Fprintf(&b, "📦 *%s*\n", p.Name)
	fmt.Fprintf(&b, "📱 *Compatível com:* %s\n", p.DeviceModel)
	fmt.Fprintf(&b, "💵 *Preço:* R$ %s\n", FormatPrice(p.Price))
	fmt.Fprintf(&b, "✅ *Em estoque:* %d unidades\n", p.Quantity)
	if p.Description != "" {
		fmt.Fprintf(&b, "📝 %s\n", p.Description)
	}
	b.WriteString("\nDeseja agendar o reparo? 😊")
	return b.String()
}

// FormatNotFoundResponse renders the clarification request sent when the
// catalog has no in-stock match for the extracted terms.
func FormatNotFoundResponse(aiName string) string {
	return fmt.Sprintf(`Olá! Sou o *%s* 👋

Não encontrei o produto específico que você mencionou em nosso estoque atual.

Para te ajudar melhor, você poderia me informar:
🔸 Modelo completo do aparelho
🔸 Qual peça precisa (tela, bateria, câmera, etc.)

Assim posso verificar se temos algo compatível! 😊`, aiName)
}

// FormatErrorResponse renders the apology template used whenever reply
// generation fails. The pipeline always falls back to this instead of
// propagating responder errors to the transport layer.
func FormatErrorResponse(aiName string) string {
	return fmt.Sprintf(`Olá! Sou o *%s* 👋

Desculpe, estou com dificuldades técnicas no momento.

Por favor, tente novamente em alguns minutos ou entre em contato diretamente conosco.

Obrigado pela compreensão! 🙏`, aiName)
}
