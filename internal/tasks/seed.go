package tasks

// SeedDefaults loads the sample tasks a fresh account starts with.
func SeedDefaults(s *Store) {
	s.Seed(BucketToday,
		Task{ID: "1", Title: "Date with girlfriend at Toit Brewpub", Date: "Today", Time: "8:00 PM", Note: "Table booked for 2. Romantic rooftop setting.", Origin: OriginAssistant, Category: "Personal", Location: "Toit Brewpub, Bangalore", Priority: PriorityHigh},
		Task{ID: "2", Title: "Team meeting with marketing", Date: "Today", Time: "11:30 AM", Note: "Discuss Q4 campaign strategies", Completed: true, Origin: OriginAssistant, Category: "Work", Priority: PriorityMedium},
		Task{ID: "3", Title: "Gym workout", Date: "Today", Time: "6:00 AM", Note: "Leg day - focus on squats and deadlifts", Completed: true, Origin: OriginUser, Category: "Health", Priority: PriorityLow},
	)
	s.Seed(BucketUpcoming,
		Task{ID: "4", Title: "Product launch meeting", Date: "Dec 30, 2024", Time: "10:00 AM", Note: "Final review before launch", Origin: OriginAssistant, Category: "Work", Priority: PriorityHigh},
		Task{ID: "5", Title: "Doctor appointment", Date: "Jan 2, 2025", Time: "3:00 PM", Note: "Annual health checkup", Origin: OriginAssistant, Category: "Health", Location: "Apollo Hospital", Priority: PriorityMedium},
		Task{ID: "6", Title: "Weekend trip planning", Date: "Jan 5, 2025", Time: "2:00 PM", Note: "Research destinations and book hotels", Origin: OriginUser, Category: "Personal", Priority: PriorityLow},
	)
}
