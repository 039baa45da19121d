package seed

import (
	"context"
	"fmt"

	"github.com/warp/portal/model"
	"github.com/warp/portal/storage"
)

const audioBase = "https://verses.quran.com/Abdul_Basit_Murattal_64kbps/"

// passwordHash is the bcrypt hash of "password123".
const passwordHash = "$2b$10$XDxPCGJsC6VnrFOXTxGszeJ9ZH0QxqF9h0nLCH6zMjy33yDhqV5T2"

var surahs = []model.Surah{
	{Number: 1, Name: "الفاتحة", EnglishName: "Al-Fatihah", EnglishNameTranslation: "The Opening", RevelationType: model.RevelationMeccan, VersesCount: 7},
	{Number: 2, Name: "البقرة", EnglishName: "Al-Baqarah", EnglishNameTranslation: "The Cow", RevelationType: model.RevelationMedinan, VersesCount: 286},
	{Number: 3, Name: "آل عمران", EnglishName: "Ali 'Imran", EnglishNameTranslation: "Family of Imran", RevelationType: model.RevelationMedinan, VersesCount: 200},
	{Number: 4, Name: "النساء", EnglishName: "An-Nisa", EnglishNameTranslation: "The Women", RevelationType: model.RevelationMedinan, VersesCount: 176},
	{Number: 5, Name: "المائدة", EnglishName: "Al-Ma'idah", EnglishNameTranslation: "The Table Spread", RevelationType: model.RevelationMedinan, VersesCount: 120},
}

var fatihah = []struct {
	text, translation string
}{
	{"بِسْمِ اللَّهِ الرَّحْمَٰنِ الرَّحِيمِ", "In the name of Allah, the Entirely Merciful, the Especially Merciful."},
	{"الْحَمْدُ لِلَّهِ رَبِّ الْعَالَمِينَ", "[All] praise is [due] to Allah, Lord of the worlds -"},
	{"الرَّحْمَٰنِ الرَّحِيمِ", "The Entirely Merciful, the Especially Merciful,"},
	{"مَالِكِ يَوْمِ الدِّينِ", "Sovereign of the Day of Recompense."},
	{"إِيَّاكَ نَعْبُدُ وَإِيَّاكَ نَسْتَعِينُ", "It is You we worship and You we ask for help."},
	{"اهْدِنَا الصِّرَاطَ الْمُسْتَقِيمَ", "Guide us to the straight path -"},
	{"صِرَاطَ الَّذِينَ أَنْعَمْتَ عَلَيْهِمْ غَيْرِ الْمَغْضُوبِ عَلَيْهِمْ وَلَا الضَّالِّينَ", "The path of those upon whom You have bestowed favor, not of those who have evoked [Your] anger or of those who are astray."},
}

var collections = []model.HadithCollection{
	{Name: "صحيح البخاري", EnglishName: "Sahih Bukhari", Description: "A collection of hadith compiled by Imam Muhammad al-Bukhari", TotalHadiths: 7563},
	{Name: "صحيح مسلم", EnglishName: "Sahih Muslim", Description: "A collection of hadith compiled by Muslim ibn al-Hajjaj", TotalHadiths: 7500},
	{Name: "الأربعون النووية", EnglishName: "40 Hadith Nawawi", Description: "A collection of forty hadith compiled by Imam Nawawi", TotalHadiths: 42},
}

// nawawi are the opening hadiths of the third collection.
var nawawi = []model.Hadith{
	{
		Number:      1,
		Text:        "إِنَّمَا الأَعْمَالُ بِالنِّيَّاتِ، وَإِنَّمَا لِكُلِّ امْرِئٍ مَا نَوَى",
		Translation: "Actions are only by intentions, and every person will have only what they intended.",
		Chapter:     ptr("Intentions"),
		Grade:       ptr("Sahih"),
	},
	{
		Number:      13,
		Text:        "لَا يُؤْمِنُ أَحَدُكُمْ حَتَّى يُحِبَّ لِأَخِيهِ مَا يُحِبُّ لِنَفْسِهِ",
		Translation: "None of you truly believes until he loves for his brother what he loves for himself.",
		Chapter:     ptr("Faith"),
		Grade:       ptr("Sahih"),
	},
	{
		Number:      7,
		Text:        "الدِّينُ النَّصِيحَةُ",
		Translation: "The religion is sincere advice.",
		Chapter:     ptr("Sincerity"),
		Grade:       ptr("Sahih"),
	},
}

var courses = []model.Course{
	{
		Title:        "Fundamentals of Quran Recitation",
		Description:  "Learn proper tajweed rules and perfect your Quranic recitation with expert guidance.",
		Level:        model.LevelBeginner,
		Duration:     "8 weeks",
		ImageURL:     ptr("https://images.unsplash.com/photo-1585036156171-384164a8c675?w=800&auto=format&fit=crop&q=60"),
		InstructorID: 1,
		Rating:       ptr(model.Rating(45)),
		ReviewCount:  ptr(128),
	},
	{
		Title:        "Foundations of Islamic Jurisprudence",
		Description:  "Understand the principles of fiqh and how Islamic rulings are derived from primary sources.",
		Level:        model.LevelIntermediate,
		Duration:     "10 weeks",
		ImageURL:     ptr("https://images.unsplash.com/photo-1565791380709-49e529c8b073?w=800&auto=format&fit=crop&q=60"),
		InstructorID: 2,
		Rating:       ptr(model.Rating(40)),
		ReviewCount:  ptr(95),
	},
	{
		Title:        "The Life of Prophet Muhammad (PBUH)",
		Description:  "Explore the life, character, and teachings of the Prophet Muhammad (peace be upon him).",
		Level:        model.LevelAll,
		Duration:     "6 weeks",
		ImageURL:     ptr("https://images.unsplash.com/photo-1602595888274-061532e9638d?w=800&auto=format&fit=crop&q=60"),
		InstructorID: 3,
		Rating:       ptr(model.Rating(49)),
		ReviewCount:  ptr(215),
	},
}

var topics = []model.Topic{
	{Name: "Quran Interpretation", Description: ptr("Discussions about Quranic verses and their interpretations"), Icon: ptr("book-open"), PostsCount: 245},
	{Name: "Prayer & Worship", Description: ptr("Questions about salah and other acts of worship"), Icon: ptr("pray"), PostsCount: 182},
	{Name: "Islamic Laws", Description: ptr("Discussions about fiqh and Shariah rulings"), Icon: ptr("balance-scale"), PostsCount: 156},
	{Name: "Family & Relationships", Description: ptr("Marriage, parenting, and family dynamics in Islam"), Icon: ptr("heart"), PostsCount: 134},
	{Name: "Islamic History", Description: ptr("Historical events and figures in Islamic history"), Icon: ptr("history"), PostsCount: 98},
}

var users = []model.User{
	{Username: "ahmed_123", Password: passwordHash, Email: "ahmed@example.com", FullName: ptr("Ahmed Mohamed")},
	{Username: "sarah_89", Password: passwordHash, Email: "sarah@example.com", FullName: ptr("Sarah Khan")},
	{Username: "omar_j", Password: passwordHash, Email: "omar@example.com", FullName: ptr("Omar Javed")},
}

// discussions reference topics and users by position. They are written
// oldest first so the newest-first feed reads top to bottom.
var discussions = []struct {
	topic, user int
	d           model.Discussion
}{
	{2, 1, model.Discussion{
		Title:   "What is the Islamic perspective on investing in stocks?",
		Content: "I want to start investing but I'm not sure about what types of stocks are permissible in Islam. How can I identify whether a company follows Shariah-compliant practices? Are there specific sectors to avoid?",
		Status:  model.DiscussionOpen,
	}},
	{1, 0, model.Discussion{
		Title:   "How do I correctly perform the Witr prayer?",
		Content: "I'm confused about the correct method to perform Witr prayer. Should I make the intention for three rakah together or separate one from two? Also, when should I recite the Qunut supplication?",
		Status:  model.DiscussionAnswered,
	}},
	{0, 2, model.Discussion{
		Title:   "Understanding the concept of 'Taqwa' in the Quran",
		Content: "The Quran frequently mentions 'Taqwa', often translated as 'God-consciousness' or 'piety'. Can someone explain the deeper meaning of this concept and how it should manifest in our daily lives?",
		Status:  model.DiscussionKnowledge,
	}},
}

func loadContent(ctx context.Context, s storage.Storage, clock storage.Clock) error {
	var fatihahID int64
	for _, surah := range surahs {
		created, err := s.CreateSurah(ctx, surah)
		if err != nil {
			return fmt.Errorf("surah %d: %w", surah.Number, err)
		}
		if surah.Number == 1 {
			fatihahID = created.ID
		}
	}
	for i, v := range fatihah {
		verse := model.Verse{
			SurahID:     fatihahID,
			Number:      i + 1,
			Text:        v.text,
			Translation: v.translation,
			AudioURL:    ptr(fmt.Sprintf("%s001%03d.mp3", audioBase, i+1)),
		}
		if _, err := s.CreateVerse(ctx, verse); err != nil {
			return fmt.Errorf("verse 1:%d: %w", i+1, err)
		}
	}

	var nawawiID int64
	for _, c := range collections {
		created, err := s.CreateHadithCollection(ctx, c)
		if err != nil {
			return fmt.Errorf("hadith collection %q: %w", c.EnglishName, err)
		}
		nawawiID = created.ID
	}
	for _, h := range nawawi {
		h.CollectionID = nawawiID
		if _, err := s.CreateHadith(ctx, h); err != nil {
			return fmt.Errorf("hadith %d: %w", h.Number, err)
		}
	}

	for _, c := range courses {
		if _, err := s.CreateCourse(ctx, c); err != nil {
			return fmt.Errorf("course %q: %w", c.Title, err)
		}
	}

	topicIDs := make([]int64, 0, len(topics))
	for _, t := range topics {
		created, err := s.CreateTopic(ctx, t)
		if err != nil {
			return fmt.Errorf("topic %q: %w", t.Name, err)
		}
		topicIDs = append(topicIDs, created.ID)
	}

	userIDs := make([]int64, 0, len(users))
	for _, u := range users {
		created, err := s.CreateUser(ctx, u)
		if err != nil {
			return fmt.Errorf("user %q: %w", u.Username, err)
		}
		userIDs = append(userIDs, created.ID)
	}

	for _, row := range discussions {
		d := row.d
		d.TopicID = topicIDs[row.topic]
		d.UserID = userIDs[row.user]
		if _, err := s.CreateDiscussion(ctx, d); err != nil {
			return fmt.Errorf("discussion %q: %w", d.Title, err)
		}
	}

	prayer := model.PrayerTime{
		Date:     clock.Today(),
		Location: DefaultLocation,
		Fajr:     "04:23",
		Dhuhr:    "12:45",
		Asr:      "16:24",
		Maghrib:  "20:04",
		Isha:     "21:35",
	}
	if _, err := s.SavePrayerTime(ctx, prayer); err != nil {
		return fmt.Errorf("prayer time: %w", err)
	}
	return nil
}
