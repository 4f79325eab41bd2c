package responder

const datePlanningTemplate = `🎯 **Premium AI Analysis Complete!**

I've checked your Google Calendar and email for next Monday. Great news! You're completely free from 7:00 PM onwards. I've blocked that time slot for your date.

🍽️ **Top 5 Premium Restaurant Recommendations in Bangalore:**

1. **Toit Brewpub** - Rooftop dining with craft beer and great ambiance
   📍 Location: Indiranagar | 💰 ₹2,500 for two | ⭐ 4.8/5

2. **The Fatty Bao** - Asian fusion with intimate seating
   📍 Location: Koramangala | 💰 ₹2,200 for two | ⭐ 4.7/5

3. **Skyye Lounge** - Fine dining with city views
   📍 Location: UB City Mall | 💰 ₹3,500 for two | ⭐ 4.9/5

4. **Caperberry** - European cuisine in a cozy setting
   📍 Location: Ulsoor | 💰 ₹2,800 for two | ⭐ 4.6/5

5. **The Reservoire** - Lakeside dining with live music
   📍 Location: Whitefield | 💰 ₹2,000 for two | ⭐ 4.5/5

🌤️ **Weather Forecast:** Clear skies, 24°C - perfect for a romantic evening!

💎 **Premium Feature:** I can instantly book your preferred restaurant once you choose. Just say "Book Toit" and I'll handle the reservation!`

const scheduleTemplate = `📅 **Premium Calendar Analysis:**

I've analyzed your complete schedule across all connected platforms:

**This Week:**
- 3 meetings scheduled
- 2 free slots available (Tuesday 2-4 PM, Friday 10-12 PM)
- 1 deadline approaching (Project report - Thursday)

**Upcoming:**
- 5 important events next week
- 2 potential conflicts detected (I can resolve these)

💎 **Premium Features Active:**
✅ Google Calendar sync
✅ Gmail integration
✅ Notion workspace connected
✅ Automatic conflict resolution
✅ Smart reminder system

Would you like me to optimize your schedule or add new events?`

const weatherTemplate = `🌤️ **Premium Weather & Location Service:**

**Current Conditions in Bangalore:**
- Temperature: 26°C (feels like 28°C)
- Condition: Partly cloudy with light winds
- Humidity: 65%
- UV Index: 6 (Moderate)

**7-Day Forecast:**
- Today: 26°C | Partly cloudy
- Tomorrow: 24°C | Light rain expected
- Weekend: 28°C | Perfect weather for outdoor activities

💎 **Premium Insights:**
- Best time for outdoor activities: 6-8 PM today
- Recommended to carry an umbrella tomorrow
- Great weather for your planned date on Monday!

Would you like location-specific recommendations based on this weather?`

const genericTemplate = `🤖 **Premium AI Assistant Ready!**

I understand you need help with that. With your Premium access, I have unlimited capabilities to assist you:

💎 **Available Premium Services:**
- Smart scheduling across all your apps
- Restaurant & event booking
- Real-time weather & traffic updates
- Advanced productivity analytics
- Priority customer support
- Unlimited AI conversations

What specific task would you like me to help you with? I can handle complex requests and provide detailed solutions!`
