// Package graph exposes the donation ledger through GraphQL. The engine
// (graph-gophers/graphql-go) parses the SDL below and dispatches fields to
// the resolver set; authorization is applied when the resolver set is
// constructed, not inside resolver bodies.
package graph

// SchemaString is the schema served at /graphql. Field-level access rules
// live in NewResolver, which is the single place handlers are registered.
const SchemaString = `
schema {
	query: Query
	mutation: Mutation
}

scalar Time

enum Role {
	ADMIN
	USER
}

enum DonationStatus {
	PENDING
	PROCESSING
	COMPLETED
	FAILED
}

type User {
	id: ID!
	email: String!
	name: String
	walletAddress: String
	donations: [Donation!]!
}

type Charity {
	id: ID!
	name: String!
	description: String
	walletAddress: String!
	campaigns: [Campaign!]!
}

type Campaign {
	id: ID!
	title: String!
	description: String!
	targetAmount: Float!
	currentAmount: Float!
	charity: Charity!
	donations: [Donation!]!
}

type Donation {
	id: ID!
	amount: Float!
	currency: String!
	status: DonationStatus!
	donor: User!
	charity: Charity!
	campaign: Campaign
	transactionHash: String
	createdAt: Time!
}

input DonationInput {
	amount: Float!
	currency: String!
	charityId: ID!
	campaignId: ID
}

type Query {
	me: User!
	charity(id: ID!): Charity!
	charities: [Charity!]!
	campaign(id: ID!): Campaign!
	campaigns: [Campaign!]!
	myDonations: [Donation!]!
}

type Mutation {
	createDonation(input: DonationInput!): Donation!
	updateDonationStatus(id: ID!, status: DonationStatus!, transactionHash: String): Donation!
}
`
