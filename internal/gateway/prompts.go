package gateway

import "fmt"

// Prompt wording is configuration: tune freely, nothing parses it.

func contentPrompt(in ContentInput) string {
	subject := "this product image"
	if in.Link != "" {
		subject = "this product: " + in.Link
	}
	return fmt.Sprintf(`
TASK: Act as a world-class Myanmar marketing expert for an Amazon affiliate business.
Analyze %s.
User info: Price(%s), Phone(%s).

REQUIREMENTS for 'postCaption':
1. Hook: an emotional or curiosity-driven opening in Myanmar (Burmese).
2. Body: explain the benefits with a problem-solution framing.
3. Language: natural, persuasive, current Myanmar online-shopping expressions.
4. Call to action: urgent, using the provided phone number or link.
5. Affiliate disclosure: state clearly that this is an affiliate link.

REQUIREMENTS for 'strategyAdvice':
Give 3 professional tips for boosting sales of this specific item on Facebook.

REQUIREMENTS for 'videoScript':
Write a 15-second TikTok/Reels script around a "life-changing" or "aesthetic" angle.
`, subject, orDefault(in.Price, "Not Set"), orDefault(in.Phone, "Not Set"))
}

const reskinPrompt = `
TASK: Refine this product image.
Keep the central product EXACTLY as it is, but replace the background with a premium professional photography studio.
Environment: soft-grey minimalist studio with professional 3-point lighting.
Colors: cinematic, high-contrast, commercial color grading.
Quality: 8k resolution, ultra-detailed, professional advertisement style.`

func describePrompt(productName string) string {
	return fmt.Sprintf(`
TASK: Generate a high-end product advertisement photo for %q.
Environment: professional studio setting, soft-box lighting, cinematic shadows.
Style: premium, minimalist, 8k resolution, commercial advertising photography.`, productName)
}

func logoPrompt(brandName string, style LogoStyle) string {
	return fmt.Sprintf(`Premium brand logo for '%s'. Style: %s.
Minimalist, vector style, white background, high-end corporate branding, professional typography.`, brandName, style)
}
