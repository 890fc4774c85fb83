package patterns

var crisisHigh = []string{
	"I'm extremely concerned about you right now. Your safety is the most important thing. Please call 988 (Suicide Prevention Lifeline) immediately or go to your nearest emergency room. You matter, and there are people who want to help you right now.",
	"This sounds like a crisis situation, and I want to make sure you're safe. Please reach out to emergency services (911) or the Crisis Text Line (text HOME to 741741) right now. Can you tell me if you're in a safe place?",
	"I hear how much pain you're in, and I'm worried about your immediate safety. Please don't go through this alone. Call 988 or go to the nearest emergency room. Your life has value, and help is available right now.",
}

var crisisMedium = []string{
	"I'm really concerned about what you're sharing. These thoughts can feel overwhelming, but you don't have to face them alone. Please consider calling 988 (Suicide Prevention Lifeline) to talk to someone right now. How can we get you some immediate support?",
	"Thank you for trusting me with something so serious. What you're feeling is a sign of deep emotional pain, not that ending your life is the answer. Please reach out to the Crisis Text Line (text HOME to 741741) or call 988. Are you somewhere safe right now?",
	"I can hear how much you're struggling. These thoughts are scary, but they're also a signal that you need support right now. Please contact 988 or your local crisis line. You deserve care and help through this difficult time.",
}

var crisisLow = []string{
	"I'm glad you felt comfortable sharing these difficult thoughts with me. Even having passing thoughts about not wanting to be here can be concerning. Have you considered talking to a mental health professional about these feelings?",
	"Thank you for being open about such a difficult topic. Sometimes when life feels overwhelming, these thoughts can surface. What support do you have available to you right now?",
	"It takes courage to talk about these kinds of thoughts. While they might feel manageable right now, it's important to have support. Do you have a therapist or counselor you can speak with?",
}

var depressionResponses = []string{
	"I can really hear the heaviness in what you're sharing. Depression can make everything feel impossible, but you're not alone in this. What's one tiny thing you could do today just to take care of yourself?",
	"Thank you for sharing how you're feeling. Depression lies to us and tells us we're worthless, but that's not the truth. You have value, and these feelings will pass. What's something that used to bring you even small moments of comfort?",
	"I hear you, and I want you to know that reaching out like this shows real strength. Depression can make us feel disconnected from everything we used to enjoy. What would taking care of yourself look like today, even in the smallest way?",
	"When we're depressed, our brain focuses on the negatives. Let's challenge this: can you think of one person who cares about you? One thing you accomplished recently, even something small?",
}

var anxietyResponses = []string{
	"I can sense how anxious you're feeling right now. Let's try to ground you in this moment. Can you take a slow breath with me and tell me 5 things you can see around you right now?",
	"Anxiety can make our minds race with worst-case scenarios. Let's slow down and challenge some of those thoughts. What evidence do you have that your worry will actually happen? What's a more realistic outcome?",
	"I understand how overwhelming anxiety can feel. Your body is trying to protect you, but sometimes it goes into overdrive. Let's try the 4-7-8 breathing: breathe in for 4, hold for 7, exhale for 8. Want to try it together?",
	"Anxiety is your brain trying to protect you, but sometimes it's overactive. What specific situation is triggering this anxiety? Let's break it down into smaller, manageable parts.",
}

var relationshipResponses = []string{
	"Relationships can be one of our greatest sources of both joy and pain. I hear that you're going through something difficult. What aspect of this situation feels most challenging for you right now?",
	"Thank you for sharing what's happening in your relationship. Conflicts and challenges are normal, even in healthy relationships. What kind of support would be most helpful right now?",
	"I can sense this relationship situation is really affecting you. Sometimes when we're in the middle of relationship stress, it's hard to see clearly. What would you tell a good friend who came to you with this same situation?",
	"Relationship conflicts often stem from unmet needs or different communication styles. Can you identify what you need that you're not getting? How might you express this constructively?",
}

var workResponses = []string{
	"Work stress can really take a toll on our mental health. It sounds like things have been particularly challenging lately. What aspect of work is causing you the most stress right now?",
	"I hear how overwhelming work has become. When we're stressed at work, it often spills over into every other area of our life. What boundaries could you set to protect your well-being?",
	"Workplace stress is so common, but that doesn't make it any less difficult. Have you been able to take breaks during your day, or has it been non-stop pressure?",
}

var angerResponses = []string{
	"I can sense your frustration. Anger is often a secondary emotion covering hurt, fear, or disappointment. What do you think might be underneath this anger?",
	"Let's pause and use the STOP technique: Stop what you're doing, Take a breath, Observe your thoughts and feelings, Proceed mindfully. What would responding, not reacting, look like in this situation?",
	"Anger gives us energy for action, but we want to channel it productively. What boundary needs to be set? What problem needs solving?",
	"It sounds like something important to you feels threatened or violated. What values or needs aren't being met in this situation?",
}

var cognitiveResponses = []string{
	"I notice you're using all-or-nothing language. Let's reframe this: instead of 'I can't,' try 'I haven't figured out how yet.' Instead of 'It's impossible,' try 'It's challenging, but let me think of different approaches.'",
	"Those thoughts sound really overwhelming. Let's examine the evidence: what facts support this thought? What facts challenge it? What would you tell a good friend facing this exact situation?",
	"When we feel stuck, our thinking narrows. Let's brainstorm: what are 3 different approaches you could try, even if they seem unlikely to work?",
	"Perfectionist thinking can paralyze us. What would 'good enough' look like here? Sometimes taking imperfect action is better than no action at all.",
}

var lonelinessResponses = []string{
	"Loneliness is painful, and it's brave of you to acknowledge it. Connection starts with small steps: could you send a text to an acquaintance or join an online community around an interest you have?",
	"Feeling alone doesn't mean you are alone. Sometimes we feel disconnected even around people. What kind of connection are you craving right now?",
	"Building relationships takes time, but every interaction is a seed. What interests or hobbies do you have? There are others who share them.",
	"Loneliness often makes us feel like we're the only ones struggling, but many people feel this way. What's one way you could reach out today?",
}

var anxietyTips = []string{
	"Try the 4-7-8 breathing technique: inhale for 4, hold for 7, exhale for 8",
	"Ground yourself by naming 5 things you can see around you right now",
	"Gently remind yourself: 'This feeling will pass. I am safe right now.'",
	"Try progressive muscle relaxation: tense and release each muscle group",
}

var depressionTips = []string{
	"Set a tiny goal for today - even getting dressed counts as an achievement",
	"Reach out to one person, even just to say hello",
	"Spend 5 minutes outside if possible, or near a window with natural light",
	"Listen to music that matches your mood, then gradually shift to something uplifting",
}

var angerTips = []string{
	"Take 10 deep breaths before responding to whatever triggered you",
	"Write down your feelings without censoring yourself, then tear up the paper",
	"Do something physical - walk, stretch, or do jumping jacks for 2 minutes",
	"Ask yourself: 'What do I need right now?' and honor that need constructively",
}

var stressTips = []string{
	"Make a to-do list and pick just ONE thing to focus on right now",
	"Take a 5-minute break to do something you enjoy",
	"Practice saying 'no' to additional commitments today",
	"Remember: you don't have to be perfect, you just have to show up",
}

var mentalHealthResources = []string{
	"If you're in crisis, please reach out to the Suicide Prevention Lifeline: 988",
	"Crisis Text Line: text HOME to 741741",
	"For ongoing support, consider a therapist directory to find someone near you",
	"Local community mental health centers often offer sliding scale fees",
}

var selfCareStrategies = []string{
	"Take a 5-minute walk outside - fresh air and movement can shift your mood",
	"Practice deep breathing: 4 counts in, 4 counts hold, 6 counts out",
	"Write down 3 things you're grateful for, no matter how small",
	"Reach out to one person you care about with a simple check-in",
}

var wellnessCheckIns = []string{
	"How are you taking care of yourself today?",
	"What's one thing that's going well in your life right now?",
	"Have you had enough water and rest today?",
	"What's one small thing you can do for yourself right now?",
	"How are your energy levels today?",
	"What would make today feel a little better for you?",
}

var veryNegativeTemplates = []string{
	"I can sense you're going through a really difficult time{name}. Your feelings are completely valid, and you don't have to face this alone. What's one small step you could take right now to care for yourself?",
	"It sounds like you're carrying a heavy emotional load{name}. Feelings are temporary, even when they feel overwhelming. What usually helps you feel even slightly better?",
	"I hear how much you're struggling{name}. When we're in emotional pain, it's important to be gentle with ourselves. Is there someone in your life you can reach out to for support?",
}

var positiveTemplates = []string{
	"I can hear some positive energy in your message{name}! That's wonderful to see. How can we build on these good feelings and maintain this momentum?",
	"It's great to connect with you when you're feeling more positive{name}! What's contributing to this good mood? Understanding what helps can be valuable for tougher days.",
	"I love hearing when things are going well{name}! What's been working for you lately?",
}

var adaptiveTemplates = []string{
	"Thank you for sharing with me{name}. I can hear that something important is on your mind. What would be most helpful for you right now - talking through your feelings, exploring some strategies, or just having someone listen?",
	"I'm here to support you through whatever you're experiencing{name}. What's been weighing on you most lately? I want to understand so I can better help you.",
	"It takes courage to reach out and share{name}. What's happening in your life that brought you here today? I'm here to listen and support you however I can.",
}
