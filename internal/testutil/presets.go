package testutil

import "github.com/zjrosen/dealboard/internal/pipeline"

// WithStandardTestData adds six deals: two prospecting, three technical,
// none quoting and one in negotiation.
func (b *Builder) WithStandardTestData() *Builder {
	return b.
		WithDeal("Acme renewal", Company("Acme"), Dollars(12000), InStage(pipeline.Prospecting)).
		WithDeal("Globex pilot", Company("Globex"), Dollars(5000), InStage(pipeline.Prospecting)).
		WithDeal("Initech SSO", Company("Initech"), Dollars(9000), InStage(pipeline.Technical),
			Notes("Needs **SAML** review before pricing.")).
		WithDeal("Umbrella expansion", Company("Umbrella"), Dollars(3000), InStage(pipeline.Technical)).
		WithDeal("Hooli trial", Company("Hooli"), Dollars(1000), InStage(pipeline.Technical)).
		WithDeal("Vandelay imports", Company("Vandelay"), Dollars(7000), InStage(pipeline.Negotiation))
}
