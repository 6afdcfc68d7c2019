package lexicon

// Default returns a fresh copy of the built-in tables.
func Default() *Lexicon {
	return &Lexicon{
		TechnicalSkills: []string{
			// Programming languages
			"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Swift", "Kotlin",
			"PHP", "Ruby", "Scala", "R", "MATLAB", "SQL", "HTML", "CSS", "Dart", "Perl",

			// Frameworks and libraries
			"React", "Angular", "Vue.js", "Node.js", "Express.js", "Django", "Flask", "FastAPI",
			"Spring", "Laravel", "Rails", "ASP.NET", "jQuery", "Bootstrap", "Tailwind CSS",
			"Next.js", "Nuxt.js", "Svelte", "Flutter", "React Native", "Ionic",

			// Databases
			"MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis", "Cassandra", "DynamoDB",
			"Oracle", "SQL Server", "Firebase", "Supabase", "Neo4j", "InfluxDB",

			// Cloud and DevOps
			"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins", "GitLab CI",
			"GitHub Actions", "Terraform", "Ansible", "Chef", "Puppet", "Vagrant",

			// AI/ML and data
			"Machine Learning", "Deep Learning", "Neural Networks", "TensorFlow", "PyTorch",
			"Scikit-learn", "Pandas", "NumPy", "Matplotlib", "Seaborn", "Jupyter",
			"Apache Spark", "Hadoop", "Kafka", "Airflow", "MLflow", "Kubeflow",

			// Tools
			"Git", "Linux", "Unix", "Bash", "PowerShell", "Vim", "VS Code", "IntelliJ",
			"Postman", "Swagger", "REST API", "GraphQL", "Microservices", "Agile", "Scrum",
			"JIRA", "Confluence", "Slack", "Teams", "Figma", "Adobe Creative Suite",
		},

		SkillRelationships: []Category{
			{Name: "Python", Terms: []string{"Django", "Flask", "FastAPI", "Pandas", "NumPy", "TensorFlow"}},
			{Name: "JavaScript", Terms: []string{"React", "Node.js", "Express.js", "Vue.js", "Angular"}},
			{Name: "React", Terms: []string{"Redux", "Next.js", "TypeScript", "Jest", "React Native"}},
			{Name: "AWS", Terms: []string{"Docker", "Kubernetes", "Terraform", "Jenkins", "Linux"}},
			{Name: "Machine Learning", Terms: []string{"Python", "TensorFlow", "PyTorch", "Scikit-learn", "Jupyter"}},
			{Name: "Docker", Terms: []string{"Kubernetes", "AWS", "Linux", "Jenkins", "Terraform"}},
		},

		DisplayCategories: []Category{
			{Name: "Programming Languages", Terms: []string{"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust"}},
			{Name: "Frameworks & Libraries", Terms: []string{"React", "Angular", "Vue.js", "Django", "Flask", "Spring", "Express.js"}},
			{Name: "Databases", Terms: []string{"MongoDB", "PostgreSQL", "MySQL", "Redis", "DynamoDB"}},
			{Name: "Cloud & DevOps", Terms: []string{"AWS", "Azure", "Docker", "Kubernetes", "Jenkins", "Terraform"}},
			{Name: "AI/ML & Data Science", Terms: []string{"Machine Learning", "TensorFlow", "PyTorch", "Pandas", "NumPy"}},
		},
		FallbackCategory: "Tools & Technologies",

		JobSkillCategories: []Category{
			{Name: "programming_languages", Terms: []string{
				"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust",
				"Swift", "Kotlin", "PHP", "Ruby", "Scala", "R", "MATLAB", "SQL",
			}},
			{Name: "frameworks", Terms: []string{
				"React", "Angular", "Vue.js", "Node.js", "Express.js", "Django", "Flask",
				"FastAPI", "Spring", "Laravel", "Rails", "ASP.NET", "jQuery", "Bootstrap",
			}},
			{Name: "databases", Terms: []string{
				"MongoDB", "PostgreSQL", "MySQL", "SQLite", "Redis", "Cassandra",
				"DynamoDB", "Oracle", "SQL Server", "Firebase", "Supabase",
			}},
			{Name: "cloud_devops", Terms: []string{
				"AWS", "Azure", "Google Cloud", "Docker", "Kubernetes", "Jenkins",
				"GitLab CI", "GitHub Actions", "Terraform", "Ansible",
			}},
			{Name: "ai_ml", Terms: []string{
				"Machine Learning", "Deep Learning", "Neural Networks", "TensorFlow",
				"PyTorch", "Scikit-learn", "Pandas", "NumPy", "Jupyter",
			}},
			{Name: "tools", Terms: []string{
				"Git", "Linux", "Unix", "Bash", "VS Code", "IntelliJ", "Postman",
				"Swagger", "REST API", "GraphQL", "Microservices",
			}},
		},

		StrongVerbs: []string{
			"achieved", "administered", "analyzed", "architected", "automated", "built",
			"collaborated", "configured", "created", "delivered", "deployed", "designed",
			"developed", "engineered", "enhanced", "established", "executed", "implemented",
			"improved", "increased", "initiated", "integrated", "launched", "led",
			"managed", "migrated", "optimized", "orchestrated", "organized", "performed",
			"planned", "produced", "programmed", "reduced", "refactored", "resolved",
			"scaled", "streamlined", "supervised", "transformed", "upgraded", "utilized",
		},
		WeakVerbs: []string{"did", "made", "got", "had", "was", "were", "worked", "helped", "used"},

		ExpectedSections: []string{
			"education", "experience", "projects", "skills", "certifications",
			"achievements", "awards", "publications", "volunteer", "interests",
		},

		ExperienceLevels: []Level{
			{Name: LevelEntry, Keywords: []string{"entry", "junior", "graduate", "intern", "0-1", "0-2"}},
			{Name: LevelMid, Keywords: []string{"mid", "intermediate", "2-4", "3-5", "2-5"}},
			{Name: LevelSenior, Keywords: []string{"senior", "lead", "5+", "5-8", "7+"}},
			{Name: LevelPrincipal, Keywords: []string{"principal", "staff", "architect", "8+", "10+"}},
		},
		Education: []string{
			"bachelor", "master", "phd", "doctorate", "degree", "university",
			"college", "computer science", "engineering", "mathematics",
		},
		Certifications: []string{
			"aws certified", "azure certified", "google cloud", "cissp",
			"pmp", "scrum master", "kubernetes", "docker certified",
		},
		JobTitles: []string{
			"developer", "engineer", "architect", "manager", "lead",
			"senior", "junior", "principal", "director", "analyst",
		},
		JobTypes: []string{"full-time", "part-time", "contract", "remote", "hybrid"},
		SalaryRanges: map[string]SalaryRange{
			LevelEntry:     {Min: 40000, Max: 80000},
			LevelMid:       {Min: 80000, Max: 120000},
			LevelSenior:    {Min: 120000, Max: 180000},
			LevelPrincipal: {Min: 180000, Max: 300000},
		},

		RoleSkills: []Category{
			{Name: "frontend developer", Terms: []string{"React", "Vue.js", "Angular", "TypeScript", "CSS", "HTML"}},
			{Name: "backend developer", Terms: []string{"Node.js", "Python", "Java", "SQL", "MongoDB", "REST API"}},
			{Name: "full stack developer", Terms: []string{"React", "Node.js", "Python", "SQL", "MongoDB", "TypeScript"}},
			{Name: "data scientist", Terms: []string{"Python", "R", "Machine Learning", "Pandas", "NumPy", "TensorFlow"}},
			{Name: "devops engineer", Terms: []string{"AWS", "Docker", "Kubernetes", "Jenkins", "Terraform", "Linux"}},
			{Name: "mobile developer", Terms: []string{"React Native", "Flutter", "Swift", "Kotlin", "iOS", "Android"}},
		},

		QuickMatchStopwords:     []string{"the", "and", "or", "but", "in", "on", "at", "to", "for", "of", "with", "by"},
		KeywordStopwords:        []string{"with", "have", "will", "work", "team", "experience", "skills"},
		MissingKeywordStopwords: []string{"with", "have", "will", "work", "team", "experience"},
	}
}
