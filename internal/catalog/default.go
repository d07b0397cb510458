package catalog

import "github.com/jonathan/revops-assessment/internal/types"

var defaultCatalog = MustNew(defaultSections())

// Default returns the RevOps maturity questionnaire: 8 sections, 49 questions.
func Default() *Catalog {
	return defaultCatalog
}

func defaultSections() []types.Section {
	return []types.Section{
		{
			ID:     "foundations",
			Number: 1,
			Title:  "GTM Foundations",
			Focus:  "Sales and marketing alignment with core RevOps principles",
			Questions: []types.Question{
				{ID: "f1", Title: "Revenue Leadership Structure", Text: "We have a Chief Revenue Officer (CRO) or equivalent leadership role that oversees sales, marketing, and customer success."},
				{ID: "f2", Title: "Cross-Functional Alignment", Text: "Sales and marketing teams are aligned on target account lists, messaging, and lead scoring criteria."},
				{ID: "f3", Title: "Go-to-Market Strategy", Text: "We have a documented, updated Go-to-Market strategy that defines customer segments, positioning, and channels."},
				{ID: "f4", Title: "Compensation Alignment", Text: "Sales and marketing compensation plans are aligned and reward behaviors that drive revenue outcomes."},
				{ID: "f5", Title: "SLA Definition", Text: "We have defined SLAs between marketing and sales regarding lead quantity, quality, and follow-up."},
				{ID: "f6", Title: "Revenue Goals Cascading", Text: "Revenue goals are cascaded through departments with individual and team quotas aligned to company targets."},
			},
		},
		{
			ID:     "datamodel",
			Number: 2,
			Title:  "Data Model & Architecture",
			Focus:  "Foundation for accurate reporting and predictive analytics",
			Questions: []types.Question{
				{ID: "d1", Title: "CRM Data Structure", Text: "Our CRM has a well-defined, documented data model with clear relationships between accounts, contacts, and opportunities."},
				{ID: "d2", Title: "Data Governance", Text: "We have established data governance standards with clear ownership and documentation of data definitions."},
				{ID: "d3", Title: "Customer Hierarchy", Text: "We maintain a clear account hierarchy with parent accounts, business units, and subsidiaries properly mapped."},
				{ID: "d4", Title: "Data Hygiene Processes", Text: "We have documented processes and tools to ensure data accuracy, deduplication, and regular cleaning."},
				{ID: "d5", Title: "Custom Field Strategy", Text: "Custom fields in our CRM follow a naming convention and are documented with clear purpose and usage."},
				{ID: "d6", Title: "Data Integration Layer", Text: "We have a planned, documented data integration architecture connecting all systems of record."},
				{ID: "d7", Title: "Pipeline Data Accuracy", Text: "Opportunity stage progression, close dates, and deal values are consistently accurate and up-to-date."},
				{ID: "d8", Title: "Compliance & Audit Trail", Text: "We maintain audit trails, change logs, and compliance documentation for sensitive customer data."},
			},
		},
		{
			ID:     "stack",
			Number: 3,
			Title:  "Systems Stack",
			Focus:  "Integrated tools that support revenue operations",
			Questions: []types.Question{
				{ID: "s1", Title: "Core Systems Integration", Text: "Our CRM, marketing automation, and forecasting tools are integrated with minimal manual data entry."},
				{ID: "s2", Title: "Sales Enablement Tools", Text: "We have implemented sales enablement tools (content, training, playbooks) integrated with our CRM."},
				{ID: "s3", Title: "Analytics Platform", Text: "We have a centralized analytics platform (BI tool, data warehouse) for reporting across all systems."},
				{ID: "s4", Title: "Workflow Automation", Text: "We use workflow automation to minimize manual data entry and repetitive processes."},
				{ID: "s5", Title: "Tool Consolidation", Text: "We have completed a tools audit and are working to reduce tool sprawl and redundancy."},
				{ID: "s6", Title: "System Reliability", Text: "Our core systems have documented uptime SLAs and we have backup/disaster recovery plans in place."},
			},
		},
		{
			ID:     "lifecycle",
			Number: 4,
			Title:  "Lead Lifecycle",
			Focus:  "Clear definition and management of buyer journey",
			Questions: []types.Question{
				{ID: "l1", Title: "Lead Definition", Text: "We have clearly defined what constitutes a lead, MQL, SAL, SQL, and opportunity with specific criteria."},
				{ID: "l2", Title: "Lead Scoring", Text: "We have a lead scoring model that combines behavioral and firmographic data to prioritize leads."},
				{ID: "l3", Title: "Lead Assignment Logic", Text: "Lead assignment rules are documented and automated based on territory, industry, or company size."},
				{ID: "l4", Title: "Lead Nurturing Programs", Text: "We have defined nurture tracks for leads at different stages in the buying journey."},
				{ID: "l5", Title: "Prospect Journey Mapping", Text: "We have mapped the prospect journey with defined touchpoints and milestones for each stage."},
				{ID: "l6", Title: "Lead Status Management", Text: "Lead status changes are triggered automatically or tracked closely with defined rules for progression."},
				{ID: "l7", Title: "Engagement Tracking", Text: "We track prospect engagement across channels (email, web, ads, events) within our CRM."},
				{ID: "l8", Title: "Lead Response Process", Text: "We have a documented, timed process for sales to respond to leads with measured response rates."},
			},
		},
		{
			ID:     "pipeline",
			Number: 5,
			Title:  "Pipeline & Forecast",
			Focus:  "Accuracy and visibility into revenue generation",
			Questions: []types.Question{
				{ID: "p1", Title: "Pipeline Stages", Text: "We have documented pipeline stages with clear entry/exit criteria and average deal duration."},
				{ID: "p2", Title: "Sales Forecast Process", Text: "We have a documented forecasting process with defined rules for how reps forecast pipeline."},
				{ID: "p3", Title: "Deal Velocity Tracking", Text: "We track deal velocity (how long deals spend in each stage) and use this for forecasting."},
				{ID: "p4", Title: "Forecast Accuracy", Text: "Our forecasts are within ±10% of actual bookings, analyzed monthly for accuracy trends."},
				{ID: "p5", Title: "Scenario Modeling", Text: "We perform scenario modeling (best case, most likely, worst case) in forecasting processes."},
				{ID: "p6", Title: "Pipeline Health Monitoring", Text: "We monitor pipeline health metrics (coverage, aging deals, stage distribution) regularly."},
			},
		},
		{
			ID:     "campaigns",
			Number: 6,
			Title:  "Campaigns & Planning",
			Focus:  "Strategic execution of revenue initiatives",
			Questions: []types.Question{
				{ID: "c1", Title: "Campaign Planning Framework", Text: "We have a defined framework for planning and executing campaigns with clear goals and success metrics."},
				{ID: "c2", Title: "Budget Allocation", Text: "We allocate marketing and sales budgets based on channel performance and ROI analysis."},
				{ID: "c3", Title: "Campaign Execution Process", Text: "Campaigns are executed consistently using documented playbooks and checklists."},
				{ID: "c4", Title: "Campaign Attribution", Text: "We track campaign influence on opportunities and revenue with multi-touch attribution modeling."},
				{ID: "c5", Title: "Launch Readiness Review", Text: "We conduct launch readiness reviews to ensure alignment between marketing, sales, and enablement teams."},
			},
		},
		{
			ID:     "reporting",
			Number: 7,
			Title:  "Reporting & Analytics",
			Focus:  "Data-driven decision making across the organization",
			Questions: []types.Question{
				{ID: "r1", Title: "Executive Dashboards", Text: "We have executive dashboards that track key revenue metrics (pipeline, forecast, ARR, CAC)."},
				{ID: "r2", Title: "Sales Productivity Metrics", Text: "We measure and report on rep productivity (activities, conversion rates, win rates, deal size)."},
				{ID: "r3", Title: "Marketing Attribution", Text: "We have defined marketing attribution models and report on marketing contribution to revenue."},
				{ID: "r4", Title: "Predictive Analytics", Text: "We use predictive analytics or AI to forecast outcomes and identify at-risk deals or leads."},
				{ID: "r5", Title: "Data Transparency", Text: "Sales and marketing teams have self-service access to reports relevant to their roles."},
			},
		},
		{
			ID:     "governance",
			Number: 8,
			Title:  "Governance",
			Focus:  "Processes and accountability for revenue operations",
			Questions: []types.Question{
				{ID: "g1", Title: "RevOps Leadership", Text: "We have a dedicated RevOps leader or team with accountability for tools, processes, and data."},
				{ID: "g2", Title: "Change Management Process", Text: "We have a formal change management process for updates to CRM, processes, and tools."},
				{ID: "g3", Title: "Process Documentation", Text: "All revenue processes are documented, centralized, and regularly reviewed/updated."},
				{ID: "g4", Title: "Training & Adoption", Text: "We have regular training programs to ensure tool adoption and process compliance."},
				{ID: "g5", Title: "KPI Review Cadence", Text: "We conduct regular review sessions (weekly, monthly) to analyze metrics and make data-driven decisions."},
			},
		},
	}
}
